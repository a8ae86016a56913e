package fpsettings

import "sync"

var fpsettingsTestLock sync.Mutex

func withTestGlobalLock(t interface {
	Helper()
	Cleanup(func())
}) {
	t.Helper()
	fpsettingsTestLock.Lock()
	t.Cleanup(func() {
		fpsettingsTestLock.Unlock()
	})
}
