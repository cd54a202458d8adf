// Package providers - Utility functions.
package providers

import "runtime"

// GetSharedLibPath returns the default path to the ONNX Runtime shared
// library for the current platform, or the empty string when the platform
// has no bundled build.
//
// Returns:
//   - string: The path to the shared library.
func GetSharedLibPath() string {
	if runtime.GOOS == "windows" {
		if runtime.GOARCH == "amd64" {
			return "./third_party/onnxruntime.dll"
		}
	}
	if runtime.GOOS == "darwin" {
		return "./third_party/libonnxruntime.dylib"
	}
	if runtime.GOOS == "linux" {
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
	return ""
}
