package io

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/phil-mansfield/xtal"
	"github.com/phil-mansfield/xtal/centering"
)

var end = binary.LittleEndian

// MaxZoneElements bounds the vertex and edge counts ReadZone will accept. A
// Brillouin zone has at most 24 vertices and 36 edges.
const MaxZoneElements = 1 << 16

// ZoneHeader is the header of a binary zone file. It is followed by
// Vertices 3-vectors and then Edges pairs of 3-vectors, all little endian
// float64s.
type ZoneHeader struct {
	Type TypeInfo
	Cell CellInfo
}

type TypeInfo struct {
	Endianness int64
	HeaderSize int64
	Vertices   int64
	Edges      int64
}

type CellInfo struct {
	// Lengths in Angstroms, followed by angles in degrees.
	Params    [6]float64
	Centering [4]byte
	Volume    float64
}

// Vector and Segment are the element types of a zone file.
type Vector [3]float64
type Segment [2]Vector

// NewZoneHeader creates the header for the zone of a plan.
func NewZoneHeader(req *xtal.Request, res *xtal.Result) *ZoneHeader {
	hd := &ZoneHeader{}
	hd.Type.Endianness = 0 // little
	hd.Type.HeaderSize = int64(binary.Size(hd))
	hd.Type.Vertices = int64(len(res.Vertices))
	hd.Type.Edges = int64(len(res.Edges))

	hd.Cell.Params = [6]float64{
		req.A, req.B, req.C, req.Alpha, req.Beta, req.Gamma,
	}
	copy(hd.Cell.Centering[:], res.Centering)
	hd.Cell.Volume = res.Volume
	return hd
}

// Symbol returns the centering stored in the header.
func (hd *ZoneHeader) Symbol() centering.Symbol {
	n := 0
	for n < len(hd.Cell.Centering) && hd.Cell.Centering[n] != 0 {
		n++
	}
	return centering.Symbol(hd.Cell.Centering[:n])
}

// WriteZone writes the Brillouin zone of a plan to w.
func WriteZone(w io.Writer, req *xtal.Request, res *xtal.Result) error {
	hd := NewZoneHeader(req, res)
	if err := binary.Write(w, end, hd); err != nil {
		return err
	}

	vs := make([]Vector, len(res.Vertices))
	for i := range vs {
		vs[i] = res.Vertices[i]
	}
	if err := binary.Write(w, end, vs); err != nil {
		return err
	}

	segs := make([]Segment, len(res.Edges))
	for i := range segs {
		segs[i] = Segment{res.Edges[i][0], res.Edges[i][1]}
	}
	return binary.Write(w, end, segs)
}

// ReadZone reads a zone written by WriteZone.
func ReadZone(r io.Reader) (*ZoneHeader, []Vector, []Segment, error) {
	hd := &ZoneHeader{}
	if err := binary.Read(r, end, hd); err != nil {
		return nil, nil, nil, err
	}
	if hd.Type.HeaderSize != int64(binary.Size(hd)) {
		return nil, nil, nil, fmt.Errorf(
			"Zone header size is %d, but expected %d.",
			hd.Type.HeaderSize, binary.Size(hd),
		)
	}
	if hd.Type.Vertices < 0 || hd.Type.Edges < 0 ||
		hd.Type.Vertices > MaxZoneElements || hd.Type.Edges > MaxZoneElements {
		return nil, nil, nil, fmt.Errorf(
			"Zone header has %d vertices and %d edges.",
			hd.Type.Vertices, hd.Type.Edges,
		)
	}
	if err := checkZoneLength(r, hd); err != nil {
		return nil, nil, nil, err
	}

	vs := make([]Vector, hd.Type.Vertices)
	if err := binary.Read(r, end, vs); err != nil {
		return nil, nil, nil, err
	}
	segs := make([]Segment, hd.Type.Edges)
	if err := binary.Read(r, end, segs); err != nil {
		return nil, nil, nil, err
	}
	return hd, vs, segs, nil
}

// checkZoneLength compares the body size promised by hd against the bytes
// left in r. Readers which can't seek are only bounded by MaxZoneElements.
func checkZoneLength(r io.Reader, hd *ZoneHeader) error {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return nil
	}

	pos, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	size, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err = seeker.Seek(pos, io.SeekStart); err != nil {
		return err
	}

	want := hd.Type.Vertices*int64(binary.Size(Vector{})) +
		hd.Type.Edges*int64(binary.Size(Segment{}))
	if size-pos < want {
		return fmt.Errorf(
			"Zone header has %d vertices and %d edges, which need %d bytes, "+
				"but only %d remain.",
			hd.Type.Vertices, hd.Type.Edges, want, size-pos,
		)
	}
	return nil
}
