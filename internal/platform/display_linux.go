//go:build linux

package platform

import (
	"os"

	"github.com/BurntSushi/xgb"

	"github.com/ddemile/soundboard/internal/logger"
)

func detectDisplayServer() DisplayServer {
	kind := Detect(DetectEnv{
		Getenv:        os.Getenv,
		Setenv:        os.Setenv,
		CanConnectX11: canConnectX11,
	})
	logger.Infof("display server: %s", kind)
	return kind
}

// canConnectX11 opens and closes a connection to the default X display.
func canConnectX11() bool {
	conn, err := xgb.NewConn()
	if err != nil {
		logger.Debugf("X11 connection failed: %v", err)
		return false
	}
	conn.Close()
	return true
}
