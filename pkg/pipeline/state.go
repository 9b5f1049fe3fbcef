package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrStateMismatch is returned when saved states do not belong to the pipeline loading them.
var ErrStateMismatch = errors.New("fitted state does not match pipeline")

const stateVersion = 2

// stateDecoder is implemented by stages that learn state, so saved states
// can be decoded into the right type.
type stateDecoder interface {
	NewState() any
}

type stateFile struct {
	Version int           `msgpack:"version"`
	Steps   []stateRecord `msgpack:"steps"`
}

// stateRecord holds one step's encoded state and the fingerprint of the
// stage that learned it.
type stateRecord struct {
	Step  string `msgpack:"step"`
	Stage []byte `msgpack:"stage,omitempty"`
	State []byte `msgpack:"state"`
}

// fingerprint encodes a stage's concrete type and exported configuration.
func fingerprint(s Stage) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.EncodeString(fmt.Sprintf("%T", s)); err != nil {
		return nil, err
	}
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeState decodes raw into a fresh state of the stage, rejecting fields
// the state type does not have.
func decodeState(sd stateDecoder, raw []byte) (any, error) {
	v := sd.NewState()
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Save writes the learned states as msgpack.
func (f *Fitted) Save(w io.Writer) error {
	file := stateFile{Version: stateVersion, Steps: make([]stateRecord, len(f.p.steps))}
	for i, s := range f.p.steps {
		file.Steps[i].Step = s.Name
		if f.states[i] == nil {
			continue
		}
		raw, err := msgpack.Marshal(f.states[i])
		if err != nil {
			return fmt.Errorf("encode state of step %q: %w", s.Name, err)
		}
		fp, err := fingerprint(s.Stage)
		if err != nil {
			return fmt.Errorf("encode stage of step %q: %w", s.Name, err)
		}
		file.Steps[i].State = raw
		file.Steps[i].Stage = fp
	}
	return msgpack.NewEncoder(w).Encode(&file)
}

// Load reads states written by Fitted.Save for a pipeline with the same steps.
func (p *Pipeline) Load(r io.Reader) (*Fitted, error) {
	var file stateFile
	if err := msgpack.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode fitted state: %w", err)
	}
	if file.Version != stateVersion {
		return nil, fmt.Errorf("%w: unsupported state version %d", ErrStateMismatch, file.Version)
	}
	if len(file.Steps) != len(p.steps) {
		return nil, fmt.Errorf("%w: %d saved steps, pipeline has %d", ErrStateMismatch, len(file.Steps), len(p.steps))
	}

	states := make([]any, len(p.steps))
	for i, s := range p.steps {
		rec := file.Steps[i]
		if rec.Step != s.Name {
			return nil, fmt.Errorf("%w: saved step %d is %q, pipeline has %q", ErrStateMismatch, i, rec.Step, s.Name)
		}
		sd, stateful := s.Stage.(stateDecoder)
		if len(rec.State) == 0 {
			if stateful {
				return nil, fmt.Errorf("%w: step %q has no saved state", ErrStateMismatch, s.Name)
			}
			continue
		}
		if !stateful {
			return nil, fmt.Errorf("%w: step %q holds state but its stage learns none", ErrStateMismatch, s.Name)
		}
		fp, err := fingerprint(s.Stage)
		if err != nil {
			return nil, fmt.Errorf("encode stage of step %q: %w", s.Name, err)
		}
		if !bytes.Equal(fp, rec.Stage) {
			return nil, fmt.Errorf("%w: step %q was fitted by a stage of another type or configuration", ErrStateMismatch, s.Name)
		}
		v, err := decodeState(sd, rec.State)
		if err != nil {
			return nil, fmt.Errorf("%w: decode state of step %q: %v", ErrStateMismatch, s.Name, err)
		}
		states[i] = v
	}
	return &Fitted{p: p, states: states}, nil
}
