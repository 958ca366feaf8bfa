package ui

import "go.uber.org/zap"

// LogText is a headless centre-text sink: every update becomes a log line.
type LogText struct {
	log  *zap.Logger
	last string
}

func NewLogText(log *zap.Logger) *LogText {
	return &LogText{log: log}
}

func (t *LogText) UpdateCenterText(text string) {
	if text == "" {
		t.log.Debug("center text cleared", zap.String("was", t.last))
	} else {
		t.log.Info("center text", zap.String("text", text))
	}
	t.last = text
}

// Text returns what is currently shown.
func (t *LogText) Text() string { return t.last }
