package rpc

import (
	"bytes"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire messages for api/proto. Each type marshals itself; see codec.go.
// String fields are validated as UTF-8 in both directions.

type AudioChunk struct {
	Data   []byte
	UserID string
}

func (m *AudioChunk) MarshalWire() ([]byte, error) {
	if err := checkUTF8(m.UserID); err != nil {
		return nil, err
	}
	var b []byte
	b = appendBytes(b, 1, m.Data)
	b = appendString(b, 2, m.UserID)
	return b, nil
}

func (m *AudioChunk) UnmarshalWire(b []byte) error {
	*m = AudioChunk{}
	return rangeFields(b, func(f wireField) (err error) {
		if f.typ != protowire.BytesType {
			return nil
		}
		switch f.num {
		case 1:
			m.Data = bytes.Clone(f.bytes)
		case 2:
			m.UserID, err = f.string()
		}
		return err
	})
}

type Transcript struct {
	ID   string
	Text string
}

func (m *Transcript) MarshalWire() ([]byte, error) {
	if err := checkUTF8(m.ID, m.Text); err != nil {
		return nil, err
	}
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Text)
	return b, nil
}

func (m *Transcript) UnmarshalWire(b []byte) error {
	*m = Transcript{}
	return rangeFields(b, func(f wireField) (err error) {
		if f.typ != protowire.BytesType {
			return nil
		}
		switch f.num {
		case 1:
			m.ID, err = f.string()
		case 2:
			m.Text, err = f.string()
		}
		return err
	})
}

type Prompt struct {
	Model        string
	Temperature  float32
	Prompt       string
	Transcript   string
	TranscriptID string
	UserID       string
}

func (m *Prompt) MarshalWire() ([]byte, error) {
	if err := checkUTF8(m.Model, m.Prompt, m.Transcript, m.TranscriptID, m.UserID); err != nil {
		return nil, err
	}
	var b []byte
	b = appendString(b, 1, m.Model)
	b = appendFloat(b, 2, m.Temperature)
	b = appendString(b, 3, m.Prompt)
	b = appendString(b, 4, m.Transcript)
	b = appendString(b, 5, m.TranscriptID)
	b = appendString(b, 6, m.UserID)
	return b, nil
}

func (m *Prompt) UnmarshalWire(b []byte) error {
	*m = Prompt{}
	return rangeFields(b, func(f wireField) (err error) {
		if f.num == 2 {
			if f.typ == protowire.Fixed32Type {
				m.Temperature = f.float32()
			}
			return nil
		}
		if f.typ != protowire.BytesType {
			return nil
		}
		switch f.num {
		case 1:
			m.Model, err = f.string()
		case 3:
			m.Prompt, err = f.string()
		case 4:
			m.Transcript, err = f.string()
		case 5:
			m.TranscriptID, err = f.string()
		case 6:
			m.UserID, err = f.string()
		}
		return err
	})
}

type Summary struct {
	Text string
}

func (m *Summary) MarshalWire() ([]byte, error) {
	if err := checkUTF8(m.Text); err != nil {
		return nil, err
	}
	return appendString(nil, 1, m.Text), nil
}

func (m *Summary) UnmarshalWire(b []byte) error {
	*m = Summary{}
	return rangeFields(b, func(f wireField) (err error) {
		if f.num == 1 && f.typ == protowire.BytesType {
			m.Text, err = f.string()
		}
		return err
	})
}

type Models struct {
	Models []string
}

func (m *Models) MarshalWire() ([]byte, error) {
	if err := checkUTF8(m.Models...); err != nil {
		return nil, err
	}
	var b []byte
	for _, name := range m.Models {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, name)
	}
	return b, nil
}

func (m *Models) UnmarshalWire(b []byte) error {
	*m = Models{}
	return rangeFields(b, func(f wireField) error {
		if f.num != 1 || f.typ != protowire.BytesType {
			return nil
		}
		name, err := f.string()
		if err != nil {
			return err
		}
		m.Models = append(m.Models, name)
		return nil
	})
}

// PersistChunk is the persistence service's Chunk message. Time is in Unix
// seconds.
type PersistChunk struct {
	TranscriptID string
	SummaryID    string
	UserID       string
	Text         string
	Time         int64
}

func (m *PersistChunk) MarshalWire() ([]byte, error) {
	if err := checkUTF8(m.TranscriptID, m.SummaryID, m.UserID, m.Text); err != nil {
		return nil, err
	}
	var b []byte
	b = appendString(b, 1, m.TranscriptID)
	b = appendString(b, 2, m.SummaryID)
	b = appendString(b, 3, m.UserID)
	b = appendString(b, 4, m.Text)
	b = appendInt64(b, 5, m.Time)
	return b, nil
}

func (m *PersistChunk) UnmarshalWire(b []byte) error {
	*m = PersistChunk{}
	return rangeFields(b, func(f wireField) (err error) {
		if f.num == 5 {
			if f.typ == protowire.VarintType {
				m.Time = int64(f.u64)
			}
			return nil
		}
		if f.typ != protowire.BytesType {
			return nil
		}
		switch f.num {
		case 1:
			m.TranscriptID, err = f.string()
		case 2:
			m.SummaryID, err = f.string()
		case 3:
			m.UserID, err = f.string()
		case 4:
			m.Text, err = f.string()
		}
		return err
	})
}
