package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
)

// fakeRepo is an in-memory profile.Repository for service tests.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*profile.Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[uuid.UUID]*profile.Profile)}
}

func (r *fakeRepo) put(p *profile.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows[p.ID] = &cp
}

func (r *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.rows[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, profile.ErrProfileNotFound
}

func (r *fakeRepo) FindBySlug(ctx context.Context, slug string) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (r *fakeRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) SlugInUse(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.rows {
		if other.Slug == p.Slug && other.ID != p.ID {
			return profile.ErrSlugTaken
		}
	}
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *fakeRepo) UpsertIdentity(ctx context.Context, id uuid.UUID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.rows[id]; ok {
		p.Email = email
		return nil
	}
	r.rows[id] = &profile.Profile{ID: id, Email: email}
	return nil
}

func (r *fakeRepo) ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*profile.Profile
	for _, p := range r.rows {
		if p.IsPublished || (viewerID != nil && *viewerID == p.ID) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeRepo) UpdateAvatarPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.updatePath(id, path, true)
}

func (r *fakeRepo) UpdateBannerPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.updatePath(id, path, false)
}

func (r *fakeRepo) updatePath(id uuid.UUID, path string, avatar bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if avatar {
		p.AvatarPath = path
	} else {
		p.BannerPath = path
	}
	return nil
}

// fakeStore is an in-memory profile.MediaStore.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return s.PublicURL(key), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("http://storage.test/profiles/%s", key)
}
