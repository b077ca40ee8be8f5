package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// In-memory fakes shared by the service tests. Access is single-goroutine so
// no locking is needed.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetApproved(_ context.Context, id string, approved bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsApproved = approved
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubOrderRepo struct {
	orders map[string]*domain.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*domain.Order{}}
}

func (r *stubOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) ListCreatedSince(_ context.Context, from time.Time) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(from) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) UpdateMeta(_ context.Context, id string, update ports.OrderMetaUpdate) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if update.OrderNumber != nil {
		o.OrderNumber = *update.OrderNumber
	}
	if update.GoogleSheetLink != nil {
		o.GoogleSheetLink = *update.GoogleSheetLink
	}
	if update.FinalMeasurementsLink != nil {
		o.FinalMeasurementsLink = *update.FinalMeasurementsLink
	}
	return nil
}

func (r *stubOrderRepo) SetStageDecision(_ context.Context, id string, stage domain.Stage, status domain.StageStatus, date string, stampDate bool) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	switch stage {
	case domain.StageInitial:
		o.InitialPatternStatus = status
		if stampDate {
			o.InitialPatternDate = date
		}
	case domain.StageSecond:
		o.SecondPatternStatus = status
		if stampDate {
			o.SecondPatternDate = date
		}
	case domain.StageApproved:
		o.ApprovedPatternStatus = status
		if stampDate {
			o.ApprovedPatternDate = date
		}
	}
	return nil
}

func (r *stubOrderRepo) SetInitialPatternDate(_ context.Context, id string, date string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.InitialPatternDate = date
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

type stubPatternRepo struct {
	patterns map[string]*domain.Pattern
}

func newStubPatternRepo() *stubPatternRepo {
	return &stubPatternRepo{patterns: map[string]*domain.Pattern{}}
}

func (r *stubPatternRepo) Insert(_ context.Context, p *domain.Pattern) error {
	cp := *p
	r.patterns[p.ID] = &cp
	return nil
}

func (r *stubPatternRepo) FindByID(_ context.Context, id string) (*domain.Pattern, error) {
	p, ok := r.patterns[id]
	if !ok {
		return nil, domain.ErrPatternNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPatternRepo) ListByOrder(_ context.Context, orderID string, stage domain.Stage) ([]*domain.Pattern, error) {
	var out []*domain.Pattern
	for _, p := range r.patterns {
		if p.OrderID != orderID {
			continue
		}
		if stage != "" && p.Stage != stage {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPatternRepo) CountByOrderIDs(_ context.Context, orderIDs []string) (int64, error) {
	ids := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		ids[id] = true
	}
	var n int64
	for _, p := range r.patterns {
		if ids[p.OrderID] {
			n++
		}
	}
	return n, nil
}

func (r *stubPatternRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.patterns[id]; !ok {
		return domain.ErrPatternNotFound
	}
	delete(r.patterns, id)
	return nil
}

func (r *stubPatternRepo) DeleteByOrder(_ context.Context, orderID string) error {
	for id, p := range r.patterns {
		if p.OrderID == orderID {
			delete(r.patterns, id)
		}
	}
	return nil
}

type stubChatRepo struct {
	messages map[string]*domain.ChatMessage
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{messages: map[string]*domain.ChatMessage{}}
}

func (r *stubChatRepo) Insert(_ context.Context, msg *domain.ChatMessage) error {
	cp := *msg
	r.messages[msg.ID] = &cp
	return nil
}

func (r *stubChatRepo) FindByID(_ context.Context, id string) (*domain.ChatMessage, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubChatRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.ChatMessage, error) {
	var out []*domain.ChatMessage
	for _, m := range r.messages {
		if m.OrderID == orderID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubChatRepo) DeleteByOrder(_ context.Context, orderID string) error {
	for id, m := range r.messages {
		if m.OrderID == orderID {
			delete(r.messages, id)
		}
	}
	return nil
}

// stubBlobStore keeps blobs in a map. failDelete and failPut simulate storage
// outages.
type stubBlobStore struct {
	blobs      map[string][]byte
	nextID     int
	failPut    bool
	failDelete bool
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{blobs: map[string][]byte{}}
}

func (s *stubBlobStore) Put(_ context.Context, _ string, r io.Reader) (string, error) {
	if s.failPut {
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.nextID++
	id := fmt.Sprintf("blob-%d", s.nextID)
	s.blobs[id] = data
	return id, nil
}

func (s *stubBlobStore) Get(_ context.Context, id string) ([]byte, error) {
	data, ok := s.blobs[id]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return data, nil
}

func (s *stubBlobStore) Delete(_ context.Context, id string) error {
	if s.failDelete {
		return errors.New("storage unavailable")
	}
	if _, ok := s.blobs[id]; !ok {
		return errors.New("blob not found")
	}
	delete(s.blobs, id)
	return nil
}
