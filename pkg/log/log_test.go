package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Init 之前调用任何日志函数都不得 panic（库代码无条件打日志）。
func TestLogBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Debugf("debug %d", 1)
		Info("info")
		Infof("info %s", "x")
		Infow("info", "k", "v")
		Warnf("warn %s", "x")
		Error("error", errors.New("boom"))
		Errorf("error %s", "x")
		Sync()
	})
}

func TestInitUpgradesLogger(t *testing.T) {
	Init("debug", "console", "")
	assert.NotPanics(t, func() {
		Infof("after init %d", 2)
	})
}
