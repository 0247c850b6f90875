package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-forms/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeService struct {
	id entity.ServiceID
}

func (f *fakeService) Descriptor() entity.Descriptor {
	return entity.Descriptor{ID: f.id, DisplayName: string(f.id)}
}

func (f *fakeService) Fields() []entity.FieldSpec { return nil }

func (f *fakeService) Execute(ctx context.Context, in entity.Input) entity.Outcome {
	return &entity.Success{Message: "ok", ContentType: entity.ContentTypePlain}
}

func ids(descs []entity.Descriptor) []entity.ServiceID {
	out := make([]entity.ServiceID, 0, len(descs))
	for _, d := range descs {
		out = append(out, d.ID)
	}
	return out
}

func TestServiceRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	r := NewServiceRegistry()
	require.NoError(t, r.Register(&fakeService{id: "zeta"}))
	require.NoError(t, r.Register(&fakeService{id: "alpha"}))
	require.NoError(t, r.Register(&fakeService{id: "mid"}))

	assert.Equal(t, []entity.ServiceID{"zeta", "alpha", "mid"}, ids(r.List()))
	assert.Equal(t, 3, r.Len())
	assert.Len(t, r.Services(), 3)
}

func TestServiceRegistry_DuplicateLeavesListUnchanged(t *testing.T) {
	r := NewServiceRegistry()
	first := &fakeService{id: "text-generation"}
	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(&fakeService{id: "social-post"}))
	before := r.List()

	err := r.Register(&fakeService{id: "text-generation"})

	var dup *entity.DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, entity.ServiceID("text-generation"), dup.ID)
	assert.Equal(t, before, r.List())

	got, err := r.Resolve("text-generation")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestServiceRegistry_Resolve(t *testing.T) {
	r := NewServiceRegistry()
	svc := &fakeService{id: "meeting-scheduler"}
	require.NoError(t, r.Register(svc))

	got, err := r.Resolve("meeting-scheduler")
	require.NoError(t, err)
	assert.Same(t, svc, got)

	for _, miss := range []entity.ServiceID{"Meeting-Scheduler", "meeting", "meeting-scheduler ", ""} {
		_, err := r.Resolve(miss)
		var nf *entity.NotFoundError
		assert.True(t, errors.As(err, &nf), "expected NotFoundError for %q", miss)
	}
}

func TestServiceRegistry_ListReturnsFreshSlice(t *testing.T) {
	r := NewServiceRegistry()
	require.NoError(t, r.Register(&fakeService{id: "a"}))

	list := r.List()
	list[0].DisplayName = "mutated"

	assert.Equal(t, "a", r.List()[0].DisplayName)
}

func TestServiceRegistry_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewServiceRegistry()
		var want []entity.ServiceID
		seen := make(map[entity.ServiceID]bool)

		n := rapid.IntRange(0, 30).Draw(t, "n")
		for i := 0; i < n; i++ {
			id := entity.ServiceID(rapid.StringMatching(`[a-d]{1,2}`).Draw(t, fmt.Sprintf("id%d", i)))
			before := ids(r.List())
			err := r.Register(&fakeService{id: id})
			if seen[id] {
				var dup *entity.DuplicateIDError
				if !errors.As(err, &dup) {
					t.Fatalf("expected duplicate error for %q, got %v", id, err)
				}
				if fmt.Sprint(before) != fmt.Sprint(ids(r.List())) {
					t.Fatalf("list changed after duplicate register")
				}
				continue
			}
			if err != nil {
				t.Fatalf("register %q: %v", id, err)
			}
			seen[id] = true
			want = append(want, id)
		}

		if fmt.Sprint(want) != fmt.Sprint(ids(r.List())) {
			t.Fatalf("order mismatch: want %v got %v", want, ids(r.List()))
		}
		for _, id := range want {
			if _, err := r.Resolve(id); err != nil {
				t.Fatalf("resolve %q: %v", id, err)
			}
		}
	})
}
