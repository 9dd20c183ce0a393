package rod

import "github.com/go-rod/rod/lib/launcher"

// Available reports whether a Chrome or Chromium binary can be found on
// this machine. It is a cheap filesystem probe and does not launch
// anything; a true result still leaves room for NewExtractor to fail at
// launch time.
func Available() bool {
	_, has := launcher.LookPath()
	return has
}
