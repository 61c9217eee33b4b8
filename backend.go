package renderterm

import "fmt"

// Backend object handles. Zero is never a valid id handed out by a
// conforming backend.
type (
	BufferID  uint32
	ProgramID uint32
	TextureID uint32
)

// DrawCommand is one batched draw: VertexCount vertices read from
// Buffer, shaded by Program, sampling Texture.
type DrawCommand struct {
	Program     ProgramID
	Buffer      BufferID
	Texture     TextureID
	VertexCount int
}

// Backend is the record of render operations the terminal draws
// through. The terminal borrows it and never mutates backend-global
// state. Every handle must be non-nil; New rejects an incomplete
// record.
type Backend struct {
	CreateBuffer func(size int) (BufferID, error)
	UpdateBuffer func(id BufferID, data []byte) error
	DeleteBuffer func(id BufferID) error

	CreateProgram func(vertexSrc, fragmentSrc string) (ProgramID, error)
	DeleteProgram func(id ProgramID) error

	CreateTexture func(width, height, bytesPerPixel int) (TextureID, error)
	UpdateTexture func(id TextureID, x, y, width, height int, data []byte) error
	DeleteTexture func(id TextureID) error

	Draw        func(cmd DrawCommand) error
	SetViewport func(x, y, width, height int) error
	SetScissor  func(x, y, width, height int) error
}

// validate checks that every operation handle is present.
func (b *Backend) validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil backend", ErrInvalidArgument)
	}
	missing := ""
	switch {
	case b.CreateBuffer == nil:
		missing = "CreateBuffer"
	case b.UpdateBuffer == nil:
		missing = "UpdateBuffer"
	case b.DeleteBuffer == nil:
		missing = "DeleteBuffer"
	case b.CreateProgram == nil:
		missing = "CreateProgram"
	case b.DeleteProgram == nil:
		missing = "DeleteProgram"
	case b.CreateTexture == nil:
		missing = "CreateTexture"
	case b.UpdateTexture == nil:
		missing = "UpdateTexture"
	case b.DeleteTexture == nil:
		missing = "DeleteTexture"
	case b.Draw == nil:
		missing = "Draw"
	case b.SetViewport == nil:
		missing = "SetViewport"
	case b.SetScissor == nil:
		missing = "SetScissor"
	}
	if missing != "" {
		return fmt.Errorf("%w: backend record missing %s", ErrInvalidArgument, missing)
	}
	return nil
}

// NoopBackend returns a complete backend record whose operations accept
// everything and draw nothing. Useful for tests and headless hosts.
func NoopBackend() *Backend {
	var buffers, programs, textures uint32
	return &Backend{
		CreateBuffer: func(size int) (BufferID, error) {
			buffers++
			return BufferID(buffers), nil
		},
		UpdateBuffer: func(id BufferID, data []byte) error { return nil },
		DeleteBuffer: func(id BufferID) error { return nil },
		CreateProgram: func(vertexSrc, fragmentSrc string) (ProgramID, error) {
			programs++
			return ProgramID(programs), nil
		},
		DeleteProgram: func(id ProgramID) error { return nil },
		CreateTexture: func(width, height, bytesPerPixel int) (TextureID, error) {
			textures++
			return TextureID(textures), nil
		},
		UpdateTexture: func(id TextureID, x, y, width, height int, data []byte) error { return nil },
		DeleteTexture: func(id TextureID) error { return nil },
		Draw:          func(cmd DrawCommand) error { return nil },
		SetViewport:   func(x, y, width, height int) error { return nil },
		SetScissor:    func(x, y, width, height int) error { return nil },
	}
}
