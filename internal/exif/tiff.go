package exif

import (
	"encoding/binary"
	"fmt"
)

const (
	// maxIFDs bounds the chain of top-level directories
	maxIFDs = 8

	// typeIFD is the TIFF-EP type some writers use for sub-IFD pointers
	typeIFD Type = 13
)

// tiffParser walks a TIFF structure and collects fields in directory order
type tiffParser struct {
	data    []byte
	order   binary.ByteOrder
	fields  []Field
	visited map[uint32]bool
}

// parseTIFF parses a TIFF header and every IFD reachable from it
func parseTIFF(data []byte) ([]Field, binary.ByteOrder, error) {
	if len(data) < 8 {
		return nil, nil, invalidf("TIFF header too short")
	}

	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, nil, invalidf("invalid TIFF byte order")
	}

	if order.Uint16(data[2:4]) != 42 {
		return nil, nil, invalidf("invalid TIFF magic number")
	}

	p := &tiffParser{
		data:    data,
		order:   order,
		visited: make(map[uint32]bool),
	}

	offset := order.Uint32(data[4:8])
	for ifdNum := 0; offset != 0; ifdNum++ {
		if ifdNum >= maxIFDs {
			return nil, nil, invalidf("too many IFDs")
		}
		next, err := p.parseIFD(offset, ContextTiff, In(ifdNum))
		if err != nil {
			return nil, nil, err
		}
		offset = next
	}

	return p.fields, order, nil
}

// parseIFD parses one directory and returns the offset of the next one
func (p *tiffParser) parseIFD(offset uint32, ctx Context, in In) (uint32, error) {
	if p.visited[offset] {
		return 0, invalidf("IFD loop at offset %d", offset)
	}
	p.visited[offset] = true

	if uint64(offset)+2 > uint64(len(p.data)) {
		return 0, invalidf("truncated IFD count at offset %d", offset)
	}
	count := uint64(p.order.Uint16(p.data[offset:]))
	start := uint64(offset) + 2
	end := start + count*12
	if end+4 > uint64(len(p.data)) {
		return 0, invalidf("truncated IFD at offset %d", offset)
	}

	for i := uint64(0); i < count; i++ {
		entry := p.data[start+i*12 : start+i*12+12]
		tag := Tag{Context: ctx, Number: p.order.Uint16(entry[0:2])}
		typ := Type(p.order.Uint16(entry[2:4]))
		n := p.order.Uint32(entry[4:8])

		// Sub-IFD pointers are replaced by the fields they point at
		var child Context
		switch tag {
		case TagExifIFDPointer:
			child = ContextExif
		case TagGPSInfoIFDPointer:
			child = ContextGPS
		case TagInteropIFDPointer:
			child = ContextInterop
		default:
			value, err := p.readValue(typ, n, entry[8:12])
			if err != nil {
				return 0, fmt.Errorf("%s: %w", tag, err)
			}
			p.fields = append(p.fields, Field{Tag: tag, IFDNum: in, Value: value})
			continue
		}

		childOffset, err := p.pointer(typ, n, entry[8:12])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", tag, err)
		}
		if _, err := p.parseIFD(childOffset, child, in); err != nil {
			return 0, err
		}
	}

	return p.order.Uint32(p.data[end:]), nil
}

// pointer decodes a sub-IFD offset
func (p *tiffParser) pointer(typ Type, n uint32, field []byte) (uint32, error) {
	if n != 1 {
		return 0, invalidf("sub-IFD pointer has %d elements", n)
	}
	if typ == typeIFD {
		return p.order.Uint32(field), nil
	}
	value, err := p.readValue(typ, n, field)
	if err != nil {
		return 0, err
	}
	offset, ok := value.Uint(0)
	if !ok {
		return 0, invalidf("sub-IFD pointer has type %d", typ)
	}
	return offset, nil
}

// readValue decodes a value stored inline or at the offset in field
func (p *tiffParser) readValue(typ Type, n uint32, field []byte) (Value, error) {
	size := typ.size()
	if size == 0 {
		return Value{
			Type:          typ,
			UnknownCount:  n,
			UnknownOffset: p.order.Uint32(field),
		}, nil
	}

	total := uint64(size) * uint64(n)
	if total <= 4 {
		return decodeValue(typ, n, field, p.order), nil
	}

	offset := uint64(p.order.Uint32(field))
	if offset+total > uint64(len(p.data)) {
		return Value{}, invalidf("truncated field value")
	}
	return decodeValue(typ, n, p.data[offset:offset+total], p.order), nil
}
