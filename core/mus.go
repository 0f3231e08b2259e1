package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted types. Vectors use raw float32
// encoding since they dominate the value size and raw is both compact
// and cheap to decode.
var (
	vectorMUS = ord.NewSliceSer[float32](raw.Float32)

	MetadataMUS = metadataMUS{}
	ChunkMUS    = chunkMUS{}
)

type metadataMUS struct{}

func (metadataMUS) Marshal(v Metadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.Title, bs)
	n += varint.Int.Marshal(int(v.Category), bs[n:])
	n += varint.Int.Marshal(int(v.LawGroup), bs[n:])
	n += ord.String.Marshal(v.Section, bs[n:])
	n += ord.Bool.Marshal(v.MainProvision, bs[n:])
	n += varint.Int.Marshal(int(v.SourceType), bs[n:])
	n += ord.String.Marshal(v.Path, bs[n:])
	return
}

func (metadataMUS) Unmarshal(bs []byte) (v Metadata, n int, err error) {
	var n1 int
	v.Title, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var category int
	category, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category = Category(category)
	var lawGroup int
	lawGroup, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LawGroup = LawGroup(lawGroup)
	v.Section, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MainProvision, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var sourceType int
	sourceType, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceType = SourceType(sourceType)
	v.Path, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (metadataMUS) Size(v Metadata) (size int) {
	size = ord.String.Size(v.Title)
	size += varint.Int.Size(int(v.Category))
	size += varint.Int.Size(int(v.LawGroup))
	size += ord.String.Size(v.Section)
	size += ord.Bool.Size(v.MainProvision)
	size += varint.Int.Size(int(v.SourceType))
	size += ord.String.Size(v.Path)
	return
}

type chunkMUS struct{}

func (chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Content, bs[n:])
	n += MetadataMUS.Marshal(v.Meta, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	return
}

func (chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	var n1 int
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Meta, n1, err = MetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (chunkMUS) Size(v Chunk) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Content)
	size += MetadataMUS.Size(v.Meta)
	size += vectorMUS.Size(v.Vector)
	return
}
