package content

import (
	"bytes"
	"context"
	"image"

	// Decoders registered for ResolveImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ResolveImage resolves ref and additionally requires the payload to be a
// decodable image. A malformed payload is reported as Absent.
func (r *Resolver) ResolveImage(ctx context.Context, ref Reference) Content {
	c := r.Resolve(ctx, ref)
	data, ok := c.Bytes()
	if !ok {
		return c
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		r.logger.Printf("content: %q is not a decodable image: %v", ref, err)
		return Absent()
	}
	return c
}
