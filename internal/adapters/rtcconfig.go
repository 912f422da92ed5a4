package adapters

import "github.com/pion/webrtc/v4"

// RTCConfig builds the WebRTC configuration handed to clients before
// they attach to the media relay out-of-band. Always falls back to a
// public STUN server when none is configured.
func RTCConfig(stunURLs []string) webrtc.Configuration {
	if len(stunURLs) == 0 {
		stunURLs = []string{"stun:stun.l.google.com:19302"}
	}
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: stunURLs},
		},
	}
}
