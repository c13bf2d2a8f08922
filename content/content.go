package content

// Content is the outcome of a load: either the loaded bytes or Absent.
// The zero value is Absent.
type Content struct {
	data    []byte
	present bool
}

// Present wraps successfully loaded bytes. A nil slice is stored as an empty
// one so an empty file stays distinguishable from Absent.
func Present(data []byte) Content {
	if data == nil {
		data = []byte{}
	}
	return Content{data: data, present: true}
}

// Absent is the "could not load" outcome.
func Absent() Content {
	return Content{}
}

// Bytes returns the loaded bytes and whether the content is present.
func (c Content) Bytes() ([]byte, bool) {
	return c.data, c.present
}

// IsAbsent reports whether the load failed.
func (c Content) IsAbsent() bool {
	return !c.present
}

// Len is the number of loaded bytes, 0 when absent.
func (c Content) Len() int {
	return len(c.data)
}
