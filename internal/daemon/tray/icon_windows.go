//go:build windows

package tray

import _ "embed"

// The Windows tray only accepts .ico data.
//
//go:embed assets/icon.ico
var iconData []byte
