package adapter

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

var (
	payloadEncMode cbor.EncMode
	payloadDecMode cbor.DecMode
)

func init() {
	var err error

	// Core deterministic encoding: equal events always produce equal payload bytes.
	payloadEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("adapter: CBOR encoder initialization failed: " + err.Error())
	}

	payloadDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("adapter: CBOR decoder initialization failed: " + err.Error())
	}
}

// EventRecord is the persisted envelope of a domain event. The indexed columns
// (kind, root, type, name) are denormalized from the payload so stores can filter
// without decoding.
type EventRecord struct {
	Sequence   int64
	EventID    uuid.UUID
	Kind       m.EventKind
	RootPath   string
	HasRoot    bool
	TypeName   string
	ItemName   string
	HasName    bool
	Payload    []byte
	RecordedAt time.Time
}

// NewEventRecord encodes event into an unsequenced record.
func NewEventRecord(event m.Event) (EventRecord, error) {
	payload, err := encodePayload(event)
	if err != nil {
		return EventRecord{}, err
	}

	data, err := payloadEncMode.Marshal(payload)
	if err != nil {
		return EventRecord{}, fmt.Errorf("encode %s event: %w", event.Kind(), err)
	}

	record := EventRecord{
		EventID:    uuid.New(),
		Kind:       event.Kind(),
		Payload:    data,
		RecordedAt: time.Now().UTC(),
	}

	record.RootPath, record.HasRoot = event.RootItemPath().Get()

	if itemEvent, ok := event.(m.FixtureItemEvent); ok {
		id := itemEvent.FixtureItemID()
		record.TypeName = id.TypeFullName
		record.ItemName, record.HasName = id.Name.Get()
	}

	return record, nil
}

// Event decodes the domain event stored in the record.
func (r EventRecord) Event() (m.Event, error) {
	var payload eventPayload
	if err := payloadDecMode.Unmarshal(r.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode %s event %d: %w", r.Kind, r.Sequence, err)
	}

	event, err := decodePayload(r.Kind, payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s event %d: %w", r.Kind, r.Sequence, err)
	}

	return event, nil
}

// FixtureItemID returns the id the record concerns, if it concerns one.
func (r EventRecord) FixtureItemID() (m.FixtureItemID, bool) {
	if r.TypeName == "" {
		return m.FixtureItemID{}, false
	}

	id := m.NewFixtureItemID(r.TypeName)
	if r.HasRoot {
		id = id.WithRootItemPath(r.RootPath)
	}

	if r.HasName {
		id = id.WithName(r.ItemName)
	}

	return id, true
}

func (r EventRecord) matchesID(id m.FixtureItemID) bool {
	recordID, ok := r.FixtureItemID()
	return ok && recordID == id
}

func (r EventRecord) matchesRoot(root string) bool {
	return r.HasRoot && r.RootPath == root
}

func (r EventRecord) matchesKinds(kinds []m.EventKind) bool {
	return len(kinds) == 0 || slices.Contains(kinds, r.Kind)
}

type fixtureItemIDPayload struct {
	Root *string `cbor:"root,omitempty"`
	Type string  `cbor:"type"`
	Name *string `cbor:"name,omitempty"`
}

type sourcePayload struct {
	Kind     m.SourceKind `cbor:"kind,omitempty"`
	Document string       `cbor:"doc,omitempty"`
}

type memberPayload struct {
	Kind       m.MemberKind             `cbor:"kind"`
	Name       string                   `cbor:"name"`
	Source     sourcePayload            `cbor:"src"`
	Value      string                   `cbor:"value,omitempty"`
	Target     *fixtureItemIDPayload    `cbor:"target,omitempty"`
	Parameters map[string]memberPayload `cbor:"params,omitempty"`
	Return     *memberPayload           `cbor:"return,omitempty"`
	Signature  []string                 `cbor:"sig,omitempty"`
	Code       string                   `cbor:"code,omitempty"`
}

type eventPayload struct {
	ID          *fixtureItemIDPayload `cbor:"id,omitempty"`
	Member      *memberPayload        `cbor:"member,omitempty"`
	Reason      string                `cbor:"reason,omitempty"`
	RootPath    string                `cbor:"root,omitempty"`
	ProjectName string                `cbor:"project,omitempty"`
	Document    string                `cbor:"doc,omitempty"`
	SpanStart   int                   `cbor:"spanStart,omitempty"`
	SpanLength  int                   `cbor:"spanLength,omitempty"`
}

func encodePayload(event m.Event) (eventPayload, error) {
	switch e := event.(type) {
	case m.CreatedEvent:
		return eventPayload{ID: encodeID(e.ID)}, nil
	case m.MemberChangedEvent:
		member, err := encodeMember(e.Member)
		if err != nil {
			return eventPayload{}, err
		}

		return eventPayload{ID: encodeID(e.ID), Member: member}, nil
	case m.ConfigurationStartedEvent:
		return eventPayload{
			RootPath:    e.RootPath,
			ProjectName: e.ProjectName,
			Document:    e.DocumentFilePath,
			SpanStart:   e.InvocationSpan.Start,
			SpanLength:  e.InvocationSpan.Length,
		}, nil
	case m.ConfigurationEndedEvent:
		return eventPayload{RootPath: e.RootPath}, nil
	case m.CreatedFailedEvent:
		return eventPayload{ID: encodeID(e.ID), Reason: e.Reason}, nil
	case m.MemberChangedFailedEvent:
		payload := eventPayload{ID: encodeID(e.ID), Reason: e.Reason}

		if e.Member != nil {
			member, err := encodeMember(e.Member)
			if err != nil {
				return eventPayload{}, err
			}

			payload.Member = member
		}

		return payload, nil
	default:
		return eventPayload{}, fmt.Errorf("encode event: unsupported event type %T", event)
	}
}

func decodePayload(kind m.EventKind, p eventPayload) (m.Event, error) {
	switch kind {
	case m.EventCreated:
		id, err := decodeID(p.ID)
		if err != nil {
			return nil, err
		}

		return m.CreatedEvent{ID: id}, nil
	case m.EventMemberChanged:
		id, err := decodeID(p.ID)
		if err != nil {
			return nil, err
		}

		if p.Member == nil {
			return nil, errors.New("member is missing")
		}

		member, err := decodeMember(*p.Member)
		if err != nil {
			return nil, err
		}

		return m.MemberChangedEvent{ID: id, Member: member}, nil
	case m.EventConfigurationStarted:
		return m.ConfigurationStartedEvent{
			RootPath:         p.RootPath,
			ProjectName:      p.ProjectName,
			DocumentFilePath: p.Document,
			InvocationSpan:   m.InvocationSpan{Start: p.SpanStart, Length: p.SpanLength},
		}, nil
	case m.EventConfigurationEnded:
		return m.ConfigurationEndedEvent{RootPath: p.RootPath}, nil
	case m.EventCreatedFailed:
		id, err := decodeID(p.ID)
		if err != nil {
			return nil, err
		}

		return m.CreatedFailedEvent{ID: id, Reason: p.Reason}, nil
	case m.EventMemberChangedFailed:
		id, err := decodeID(p.ID)
		if err != nil {
			return nil, err
		}

		event := m.MemberChangedFailedEvent{ID: id, Reason: p.Reason}

		if p.Member != nil {
			event.Member, err = decodeMember(*p.Member)
			if err != nil {
				return nil, err
			}
		}

		return event, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
}

func encodeID(id m.FixtureItemID) *fixtureItemIDPayload {
	return &fixtureItemIDPayload{
		Root: id.RootItemPath.Pointer(),
		Type: id.TypeFullName,
		Name: id.Name.Pointer(),
	}
}

func decodeID(p *fixtureItemIDPayload) (m.FixtureItemID, error) {
	if p == nil || p.Type == "" {
		return m.FixtureItemID{}, errors.New("fixture item id is missing")
	}

	return m.FixtureItemID{
		RootItemPath: fxpkg.FromPointer(p.Root),
		TypeFullName: p.Type,
		Name:         fxpkg.FromPointer(p.Name),
	}, nil
}

func encodeMember(mc m.MemberConfiguration) (*memberPayload, error) {
	if mc == nil {
		return nil, errors.New("encode member: nil member configuration")
	}

	p := &memberPayload{
		Kind:   mc.Kind(),
		Name:   mc.MemberName(),
		Source: sourcePayload{Kind: mc.Source().Kind, Document: mc.Source().DocumentFilePath},
	}

	switch c := mc.(type) {
	case m.ValueMemberConfiguration:
		p.Value = c.Value
	case m.LinkMemberConfiguration:
		p.Target = encodeID(c.Target)
	case m.CodeMemberConfiguration:
		p.Code = c.SourceCode
	case m.CtorMemberConfiguration:
		p.Parameters = make(map[string]memberPayload, len(c.Parameters))

		for name, param := range c.Parameters {
			encoded, err := encodeMember(param)
			if err != nil {
				return nil, fmt.Errorf("encode parameter %q: %w", name, err)
			}

			p.Parameters[name] = *encoded
		}
	case m.MethodConfiguration:
		p.Signature = slices.Clone(c.ParameterTypes)

		if c.ReturnValue != nil {
			encoded, err := encodeMember(c.ReturnValue)
			if err != nil {
				return nil, fmt.Errorf("encode return value of %q: %w", c.Name, err)
			}

			p.Return = encoded
		}
	case m.NullMemberConfiguration, m.UndefinedMemberConfiguration, m.UniqueMemberConfiguration:
	default:
		return nil, fmt.Errorf("encode member: unsupported configuration %T", mc)
	}

	return p, nil
}

func decodeMember(p memberPayload) (m.MemberConfiguration, error) {
	source := m.ConfigurationSource{Kind: p.Source.Kind, DocumentFilePath: p.Source.Document}

	switch p.Kind {
	case m.MemberValue:
		return m.ValueMemberConfiguration{Name: p.Name, Origin: source, Value: p.Value}, nil
	case m.MemberNull:
		return m.NullMemberConfiguration{Name: p.Name, Origin: source}, nil
	case m.MemberUndefined:
		return m.UndefinedMemberConfiguration{Name: p.Name, Origin: source}, nil
	case m.MemberUnique:
		return m.UniqueMemberConfiguration{Name: p.Name, Origin: source}, nil
	case m.MemberLink:
		target, err := decodeID(p.Target)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", p.Name, err)
		}

		return m.LinkMemberConfiguration{Name: p.Name, Origin: source, Target: target}, nil
	case m.MemberCtor:
		params := make(map[string]m.MemberConfiguration, len(p.Parameters))

		for name, param := range p.Parameters {
			decoded, err := decodeMember(param)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", name, err)
			}

			params[name] = decoded
		}

		return m.CtorMemberConfiguration{Name: p.Name, Origin: source, Parameters: params}, nil
	case m.MemberMethod:
		method := m.MethodConfiguration{Name: p.Name, Origin: source, ParameterTypes: p.Signature}

		if p.Return != nil {
			returnValue, err := decodeMember(*p.Return)
			if err != nil {
				return nil, fmt.Errorf("return value of %q: %w", p.Name, err)
			}

			method.ReturnValue = returnValue
		}

		return method, nil
	case m.MemberCode:
		return m.CodeMemberConfiguration{Name: p.Name, Origin: source, SourceCode: p.Code}, nil
	default:
		return nil, fmt.Errorf("member %q has unknown kind %q", p.Name, p.Kind)
	}
}
