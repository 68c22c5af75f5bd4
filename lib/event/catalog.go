// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package event

// Window message codes the decoder knows about.
const (
	WMClose           uint32 = 0x0010
	WMMouseActivate   uint32 = 0x0021
	WMNCHitTest       uint32 = 0x0084
	WMNCMouseMove     uint32 = 0x00A0
	WMNCLButtonDown   uint32 = 0x00A1
	WMNCLButtonUp     uint32 = 0x00A2
	WMNCLButtonDblClk uint32 = 0x00A3
	WMNCRButtonDown   uint32 = 0x00A4
	WMNCRButtonUp     uint32 = 0x00A5
	WMNCRButtonDblClk uint32 = 0x00A6
	WMNCMButtonDown   uint32 = 0x00A7
	WMNCMButtonUp     uint32 = 0x00A8
	WMNCMButtonDblClk uint32 = 0x00A9
	WMNCXButtonDown   uint32 = 0x00AB
	WMNCXButtonUp     uint32 = 0x00AC
	WMNCXButtonDblClk uint32 = 0x00AD
	WMMouseMove       uint32 = 0x0200
	WMLButtonDown     uint32 = 0x0201
	WMLButtonUp       uint32 = 0x0202
	WMLButtonDblClk   uint32 = 0x0203
	WMRButtonDown     uint32 = 0x0204
	WMRButtonUp       uint32 = 0x0205
	WMRButtonDblClk   uint32 = 0x0206
	WMMButtonDown     uint32 = 0x0207
	WMMButtonUp       uint32 = 0x0208
	WMMButtonDblClk   uint32 = 0x0209
	WMMouseWheel      uint32 = 0x020A
	WMXButtonDown     uint32 = 0x020B
	WMXButtonUp       uint32 = 0x020C
	WMXButtonDblClk   uint32 = 0x020D
	WMMouseHWheel     uint32 = 0x020E
	WMCaptureChanged  uint32 = 0x0215
	WMMoving          uint32 = 0x0216
	WMNCMouseHover    uint32 = 0x02A0
	WMNCMouseLeave    uint32 = 0x02A2
	WMAppCommand      uint32 = 0x0319
)

// pointerNames is the closed catalog of pointer message names.
var pointerNames = map[uint32]string{
	WMAppCommand:      "WM_APPCOMMAND",
	WMCaptureChanged:  "WM_CAPTURECHANGED",
	WMLButtonDblClk:   "WM_LBUTTONDBLCLK",
	WMLButtonDown:     "WM_LBUTTONDOWN",
	WMLButtonUp:       "WM_LBUTTONUP",
	WMMButtonDblClk:   "WM_MBUTTONDBLCLK",
	WMMButtonDown:     "WM_MBUTTONDOWN",
	WMMButtonUp:       "WM_MBUTTONUP",
	WMMouseActivate:   "WM_MOUSEACTIVATE",
	WMMouseHWheel:     "WM_MOUSEHWHEEL",
	WMMouseMove:       "WM_MOUSEMOVE",
	WMMouseWheel:      "WM_MOUSEWHEEL",
	WMNCHitTest:       "WM_NCHITTEST",
	WMNCLButtonDblClk: "WM_NCLBUTTONDBLCLK",
	WMNCLButtonDown:   "WM_NCLBUTTONDOWN",
	WMNCLButtonUp:     "WM_NCLBUTTONUP",
	WMNCMButtonDblClk: "WM_NCMBUTTONDBLCLK",
	WMNCMButtonDown:   "WM_NCMBUTTONDOWN",
	WMNCMButtonUp:     "WM_NCMBUTTONUP",
	WMNCMouseHover:    "WM_NCMOUSEHOVER",
	WMNCMouseLeave:    "WM_NCMOUSELEAVE",
	WMNCMouseMove:     "WM_NCMOUSEMOVE",
	WMNCRButtonDblClk: "WM_NCRBUTTONDBLCLK",
	WMNCRButtonDown:   "WM_NCRBUTTONDOWN",
	WMNCRButtonUp:     "WM_NCRBUTTONUP",
	WMNCXButtonDblClk: "WM_NCXBUTTONDBLCLK",
	WMNCXButtonDown:   "WM_NCXBUTTONDOWN",
	WMNCXButtonUp:     "WM_NCXBUTTONUP",
	WMRButtonDblClk:   "WM_RBUTTONDBLCLK",
	WMRButtonDown:     "WM_RBUTTONDOWN",
	WMRButtonUp:       "WM_RBUTTONUP",
	WMXButtonDblClk:   "WM_XBUTTONDBLCLK",
	WMXButtonDown:     "WM_XBUTTONDOWN",
	WMXButtonUp:       "WM_XBUTTONUP",
}

// MessageName returns the catalog name of a pointer message code.
func MessageName(code uint32) (string, bool) {
	name, ok := pointerNames[code]
	return name, ok
}

func isWheel(code uint32) bool {
	return code == WMMouseWheel || code == WMMouseHWheel
}

func isExtendedButton(code uint32) bool {
	switch code {
	case WMXButtonDown, WMXButtonUp, WMXButtonDblClk,
		WMNCXButtonDown, WMNCXButtonUp, WMNCXButtonDblClk:
		return true
	}
	return false
}
