package action

// RotationSpeed is the spin speed RotationAction applies while running.
const RotationSpeed = 5.0

// RotationAction spins a fixed set of spinners while the enemy is in battle.
type RotationAction struct {
	Base
	spinners []*Spinner
}

// NewRotation creates a rotation action over n spinners.
func NewRotation(name string, n int) *RotationAction {
	return &RotationAction{Base: NewBase(name), spinners: newSpinners(n)}
}

// NewRotationOver wraps spinners owned elsewhere.
func NewRotationOver(name string, spinners []*Spinner) *RotationAction {
	return &RotationAction{Base: NewBase(name), spinners: spinners}
}

func (a *RotationAction) StartAction() {
	a.Base.StartAction()
	for _, s := range a.spinners {
		s.Speed = RotationSpeed
	}
}

func (a *RotationAction) StopAction() {
	a.Base.StopAction()
	for _, s := range a.spinners {
		s.Speed = 0
	}
}

func (a *RotationAction) Spinners() []*Spinner { return a.spinners }
