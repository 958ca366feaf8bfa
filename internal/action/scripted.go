package action

import (
	"github.com/beatbound/battle/internal/scripting"
	"go.uber.org/zap"
)

// ScriptRunner is the slice of the Lua engine a scripted action needs.
type ScriptRunner interface {
	RunAction(script string, stage scripting.Stage, ctx scripting.ActionContext) (scripting.ActionResult, error)
}

// ScriptedAction delegates start/stop to Lua hooks and applies the returned
// spin speed to its spinners. Script failures are logged and leave the
// spinners stopped.
type ScriptedAction struct {
	Base
	script   string
	enemy    string
	bpm      float64
	runner   ScriptRunner
	spinners []*Spinner
	log      *zap.Logger
}

func NewScripted(name, script, enemy string, bpm float64, spinners int, runner ScriptRunner, log *zap.Logger) *ScriptedAction {
	return &ScriptedAction{
		Base:     NewBase(name),
		script:   script,
		enemy:    enemy,
		bpm:      bpm,
		runner:   runner,
		spinners: newSpinners(spinners),
		log:      log,
	}
}

func (a *ScriptedAction) StartAction() {
	a.Base.StartAction()
	a.run(scripting.StageStart)
}

func (a *ScriptedAction) StopAction() {
	a.Base.StopAction()
	a.run(scripting.StageStop)
}

func (a *ScriptedAction) run(stage scripting.Stage) {
	res, err := a.runner.RunAction(a.script, stage, scripting.ActionContext{
		Enemy:    a.enemy,
		BPM:      a.bpm,
		Spinners: len(a.spinners),
	})
	speed := res.SpinSpeed
	if err != nil {
		a.log.Warn("enemy action script failed",
			zap.String("action", a.Name()),
			zap.String("enemy", a.enemy),
			zap.String("stage", string(stage)),
			zap.Error(err))
		speed = 0
	}
	if stage == scripting.StageStop {
		speed = 0
	}
	for _, s := range a.spinners {
		s.Speed = speed
	}
	if res.Text != "" {
		a.log.Debug("enemy action", zap.String("enemy", a.enemy), zap.String("text", res.Text))
	}
}

func (a *ScriptedAction) Spinners() []*Spinner { return a.spinners }
