package gstreamer

import "fmt"

// PackRows copies an RGB buffer into a tightly packed w*h*3 frame.
// Raw video rows are padded to a 4-byte stride, so widths that are not a
// multiple of four arrive with trailing bytes on every row.
func PackRows(data []byte, width, height int) ([]byte, error) {
	rowBytes := width * 3
	want := rowBytes * height
	if len(data) == want {
		frame := make([]byte, want)
		copy(frame, data)
		return frame, nil
	}
	if height == 0 || len(data)%height != 0 || len(data)/height < rowBytes {
		return nil, fmt.Errorf("gstreamer: buffer of %d bytes does not hold %dx%d RGB", len(data), width, height)
	}

	stride := len(data) / height
	frame := make([]byte, want)
	for y := 0; y < height; y++ {
		copy(frame[y*rowBytes:(y+1)*rowBytes], data[y*stride:y*stride+rowBytes])
	}
	return frame, nil
}
