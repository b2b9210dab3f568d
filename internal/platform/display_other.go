//go:build !linux

package platform

func detectDisplayServer() DisplayServer {
	return DisplayNone
}
