// Package profiling writes pprof CPU and heap profiles for a single command run.
package profiling

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
)

var osCreate = os.Create
var pprofStartCPUProfile = pprof.StartCPUProfile
var pprofStopCPUProfile = pprof.StopCPUProfile
var pprofWriteHeapProfile = func(w io.Writer) error {
	return pprof.WriteHeapProfile(w)
}

// DoCPUProfiling starts CPU profiling into file and returns the func that stops it.
// Failures are logged and yield a no-op stop func.
func DoCPUProfiling(file string) (stop func()) {
	f, err := osCreate(file)
	if err != nil {
		slog.Error("could not create CPU profile", "file", file, "err", err)
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		slog.Error("could not start CPU profile", "file", file, "err", err)
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			slog.Error("could not close CPU profile", "file", file, "err", err)
		}
	}
}

// DoMemProfiling returns a func that writes a heap profile to file when called.
func DoMemProfiling(file string) (write func()) {
	return func() {
		f, err := osCreate(file)
		if err != nil {
			slog.Error("could not create memory profile", "file", file, "err", err)
			return
		}
		defer func() {
			_ = f.Close()
		}()
		runtime.GC()
		if err = pprofWriteHeapProfile(f); err != nil {
			slog.Error("could not write memory profile", "file", file, "err", err)
		}
	}
}
