package softgpu

import "errors"

// Errors returned by the pipeline. Configuration errors are detected before
// any sample is produced; degenerate or fully clipped geometry is never an
// error.
var (
	// ErrInvalidDimensions is returned when a width or height is not positive
	// or exceeds MaxDimension.
	ErrInvalidDimensions = errors.New("softgpu: invalid dimensions")

	// ErrInvalidSampleCount is returned for sample counts other than
	// 1, 2, 4, 8 or 16.
	ErrInvalidSampleCount = errors.New("softgpu: unsupported sample count")

	// ErrAttributeArity is returned when a vertex program's output arity does
	// not match what the fragment program consumes, or a shaded vertex
	// carries the wrong number of attributes.
	ErrAttributeArity = errors.New("softgpu: attribute arity mismatch")

	// ErrNilProgram is returned when a draw is issued without both shaders.
	ErrNilProgram = errors.New("softgpu: program requires vertex and fragment shaders")

	// ErrIndexOutOfRange is returned when a mesh index refers past its
	// vertex list, or the index count is not a multiple of three.
	ErrIndexOutOfRange = errors.New("softgpu: mesh index out of range")

	// ErrInvalidTexture is returned for malformed texture data or an unknown
	// texture format.
	ErrInvalidTexture = errors.New("softgpu: invalid texture")

	// ErrUnsupportedFormat is returned for output formats other than
	// RGBA8Unorm, RGBA8UnormSrgb, BGRA8Unorm and BGRA8UnormSrgb.
	ErrUnsupportedFormat = errors.New("softgpu: unsupported output format")

	// ErrClosed is returned when a closed Pipeline is used.
	ErrClosed = errors.New("softgpu: pipeline closed")
)
