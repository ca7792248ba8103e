package application

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/domain/booking"
	"github.com/tourvista/service-tours/internal/domain/tour"
	userDomain "github.com/tourvista/service-tours/internal/domain/user"
	"github.com/tourvista/service-tours/pkg/domain"
	"github.com/tourvista/service-tours/pkg/kafka"
)

// capturingPublisher records published events instead of writing to Kafka.
type capturingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *capturingPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// fakeBookingRepo is an in-memory booking.Repository with the same CAS
// semantics as the GORM implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return clone(bk), nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, bk := range r.bookings {
		if bk.UserID() == userID {
			out = append(out, clone(bk))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingDate().After(out[j].BookingDate()) })
	return out, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*booking.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, bk := range r.bookings {
		out = append(out, clone(bk))
	}
	return out, int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = clone(bk)
	return nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, expected, next booking.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return domain.NewNotFoundError("Booking", id.String())
	}
	if bk.Status() != expected {
		return domain.NewInvalidStateError(bk.Status().String(), next.String())
	}
	bk.OverrideStatus(next)
	return nil
}

func (r *fakeBookingRepo) CancelUnlessCompleted(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return domain.NewNotFoundError("Booking", id.String())
	}
	if bk.Status() == booking.StatusCompleted {
		return domain.NewInvalidStateError(booking.StatusCompleted.String(), booking.StatusCancelled.String())
	}
	bk.OverrideStatus(booking.StatusCancelled)
	return nil
}

func (r *fakeBookingRepo) OverrideStatus(_ context.Context, id uuid.UUID, next booking.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return domain.NewNotFoundError("Booking", id.String())
	}
	bk.OverrideStatus(next)
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return domain.NewNotFoundError("Booking", id.String())
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) CountByTourPackageID(_ context.Context, tourPackageID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, bk := range r.bookings {
		for _, it := range bk.Items() {
			if it.TourPackageID == tourPackageID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) CountPerMonth(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[strconv.Itoa(int(bk.BookingDate().Month()))]++
	}
	return counts, nil
}

func clone(bk *booking.Booking) *booking.Booking {
	items := make([]booking.Item, len(bk.Items()))
	copy(items, bk.Items())
	return booking.Reconstruct(bk.ID(), bk.UserID(), items, bk.BookingDate(), bk.TotalAmountCents(), bk.Status(), bk.UpdatedAt())
}

// fakeTourRepo is an in-memory tour.Repository.
type fakeTourRepo struct {
	mu       sync.Mutex
	packages map[uuid.UUID]*tour.Package
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{packages: make(map[uuid.UUID]*tour.Package)}
}

func (r *fakeTourRepo) FindByID(_ context.Context, id uuid.UUID) (*tour.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok {
		return nil, domain.NewNotFoundError("TourPackage", id.String())
	}
	return p, nil
}

func (r *fakeTourRepo) FindAll(_ context.Context) ([]*tour.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*tour.Package
	for _, p := range r.packages {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeTourRepo) FindAvailable(_ context.Context) ([]*tour.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*tour.Package
	for _, p := range r.packages {
		if p.Availability() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeTourRepo) Search(_ context.Context, name, sortField, direction string) ([]*tour.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*tour.Package
	needle := strings.ToLower(name)
	for _, p := range r.packages {
		if strings.Contains(strings.ToLower(p.Name()), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		less := out[i].Name() < out[j].Name()
		if direction == tour.SortDesc {
			return !less
		}
		return less
	})
	return out, nil
}

func (r *fakeTourRepo) Save(_ context.Context, p *tour.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[p.ID()] = p
	return nil
}

func (r *fakeTourRepo) Update(_ context.Context, p *tour.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packages[p.ID()]; !ok {
		return domain.NewNotFoundError("TourPackage", p.ID().String())
	}
	r.packages[p.ID()] = p
	return nil
}

func (r *fakeTourRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packages[id]; !ok {
		return domain.NewNotFoundError("TourPackage", id.String())
	}
	delete(r.packages, id)
	return nil
}

// fakeUserRepo is an in-memory userDomain.Repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", username)
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username() == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*userDomain.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username() == u.Username() {
			return domain.NewDuplicateError("User", u.Username())
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("User", id.String())
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, u := range r.users {
		counts[u.Role().Name]++
	}
	return counts, nil
}

// fakeRoleRepo serves the three fixed roles.
type fakeRoleRepo struct {
	roles map[string]userDomain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[string]userDomain.Role)}
	for _, name := range []string{"USER", "AGENT", "ADMIN"} {
		r.roles[name] = userDomain.Role{ID: uuid.New(), Name: name}
	}
	return r
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*userDomain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.NewNotFoundError("Role", name)
	}
	return &role, nil
}

func (r *fakeRoleRepo) FindAll(_ context.Context) ([]*userDomain.Role, error) {
	var out []*userDomain.Role
	for name := range r.roles {
		role := r.roles[name]
		out = append(out, &role)
	}
	return out, nil
}
