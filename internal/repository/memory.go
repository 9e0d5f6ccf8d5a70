package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/vignette-service/internal/domain"
)

// MemoryStore bundles in-memory implementations of every repository
// interface. It backs the service tests and local development without a
// database. All repositories share a single mutex, so invariants with race
// shape (one live sticker per vehicle, username/phone/plate uniqueness) get
// the same serialization the postgres implementations get from transactions
// and unique indexes.
//
// Not-found is reported as pgx.ErrNoRows so services have one error path for
// both backends.
type MemoryStore struct {
	Citizens      CitizenRepository
	Staff         StaffRepository
	Vehicles      VehicleRepository
	Stickers      StickerRepository
	Payments      PaymentRepository
	TaxConfigs    TaxConfigRepository
	Audit         AuditRepository
	Inspections   InspectionRepository
	Notifications NotificationRepository

	state *memState
}

type memState struct {
	mu sync.Mutex

	citizens      map[string]domain.Citizen
	staff         map[string]domain.Staff
	vehicles      map[string]domain.Vehicle
	stickers      map[string]domain.Sticker
	payments      map[string]domain.Payment
	taxConfigs    []domain.TaxConfig
	auditEntries  []domain.AuditEntry
	inspections   []domain.Inspection
	notifications []domain.NotificationRecord
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	state := &memState{
		citizens: make(map[string]domain.Citizen),
		staff:    make(map[string]domain.Staff),
		vehicles: make(map[string]domain.Vehicle),
		stickers: make(map[string]domain.Sticker),
		payments: make(map[string]domain.Payment),
	}
	return &MemoryStore{
		Citizens:      &memCitizens{state},
		Staff:         &memStaff{state},
		Vehicles:      &memVehicles{state},
		Stickers:      &memStickers{state},
		Payments:      &memPayments{state},
		TaxConfigs:    &memTaxConfigs{state},
		Audit:         &memAudit{state},
		Inspections:   &memInspections{state},
		Notifications: &memNotifications{state},
		state:         state,
	}
}

// SeedTaxConfigs loads rate rows, replacing any prior seed.
func (s *MemoryStore) SeedTaxConfigs(configs []domain.TaxConfig) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.taxConfigs = append([]domain.TaxConfig(nil), configs...)
}

// NotificationRecords returns a copy of all recorded notifications, for tests.
func (s *MemoryStore) NotificationRecords() []domain.NotificationRecord {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return append([]domain.NotificationRecord(nil), s.state.notifications...)
}

// AuditEntries returns a copy of all recorded audit entries, for tests.
func (s *MemoryStore) AuditEntries() []domain.AuditEntry {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.state.auditEntries...)
}

// --- citizens ---

type memCitizens struct{ state *memState }

func (r *memCitizens) Create(_ context.Context, citizen *domain.Citizen) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, existing := range r.state.citizens {
		if existing.Phone == citizen.Phone {
			return ErrDuplicate
		}
	}
	if citizen.CreatedAt.IsZero() {
		citizen.CreatedAt = time.Now()
	}
	r.state.citizens[citizen.ID] = *citizen
	return nil
}

func (r *memCitizens) GetByID(_ context.Context, id string) (*domain.Citizen, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	citizen, ok := r.state.citizens[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &citizen, nil
}

func (r *memCitizens) GetByPhone(_ context.Context, phone string) (*domain.Citizen, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, citizen := range r.state.citizens {
		if citizen.Phone == phone {
			c := citizen
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// --- staff ---

type memStaff struct{ state *memState }

func (r *memStaff) Create(_ context.Context, staff *domain.Staff) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, existing := range r.state.staff {
		if existing.Username == staff.Username {
			return ErrDuplicate
		}
	}
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}
	r.state.staff[staff.ID] = *staff
	return nil
}

func (r *memStaff) GetByID(_ context.Context, id string) (*domain.Staff, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	staff, ok := r.state.staff[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (r *memStaff) GetByUsername(_ context.Context, username string) (*domain.Staff, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, staff := range r.state.staff {
		if staff.Username == username {
			st := staff
			return &st, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaff) List(_ context.Context, limit, offset int) ([]domain.Staff, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	result := make([]domain.Staff, 0, len(r.state.staff))
	for _, staff := range r.state.staff {
		result = append(result, staff)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, limit, offset, 50), nil
}

// --- vehicles ---

type memVehicles struct{ state *memState }

func (r *memVehicles) Create(_ context.Context, vehicle *domain.Vehicle) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, existing := range r.state.vehicles {
		if existing.RegistrationNumber == vehicle.RegistrationNumber {
			return ErrDuplicate
		}
	}
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now()
	}
	r.state.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *memVehicles) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	vehicle, ok := r.state.vehicles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &vehicle, nil
}

func (r *memVehicles) GetByPlate(_ context.Context, registrationNumber string) (*domain.Vehicle, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, vehicle := range r.state.vehicles {
		if vehicle.RegistrationNumber == registrationNumber {
			v := vehicle
			return &v, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memVehicles) List(_ context.Context, filter VehicleFilter) ([]domain.Vehicle, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var result []domain.Vehicle
	for _, vehicle := range r.state.vehicles {
		if filter.Region != nil && vehicle.Region != *filter.Region {
			continue
		}
		if filter.OwnerID != nil && vehicle.OwnerID != *filter.OwnerID {
			continue
		}
		result = append(result, vehicle)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, filter.Limit, filter.Offset, 50), nil
}

func (r *memVehicles) Count(_ context.Context, region *string) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var count int64
	for _, vehicle := range r.state.vehicles {
		if region == nil || vehicle.Region == *region {
			count++
		}
	}
	return count, nil
}

// --- stickers ---

type memStickers struct{ state *memState }

func (r *memStickers) Purchase(_ context.Context, sticker *domain.Sticker, payment *domain.Payment) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	for _, existing := range r.state.stickers {
		if existing.VehicleID == sticker.VehicleID && existing.IsLive(sticker.StartDate) {
			return ErrAlreadyLive
		}
	}

	if sticker.CreatedAt.IsZero() {
		sticker.CreatedAt = time.Now()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = sticker.CreatedAt
	}
	r.state.stickers[sticker.ID] = *sticker
	r.state.payments[payment.ID] = *payment

	if citizen, ok := r.state.citizens[sticker.OwnerID]; ok {
		citizen.LoyaltyPoints += sticker.LoyaltyPoints
		r.state.citizens[citizen.ID] = citizen
	}
	return nil
}

func (r *memStickers) GetLatestByVehicle(_ context.Context, vehicleID string) (*domain.Sticker, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var latest *domain.Sticker
	for _, sticker := range r.state.stickers {
		if sticker.VehicleID != vehicleID {
			continue
		}
		st := sticker
		if latest == nil || st.CreatedAt.After(latest.CreatedAt) ||
			(st.CreatedAt.Equal(latest.CreatedAt) && st.ID > latest.ID) {
			latest = &st
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return latest, nil
}

func (r *memStickers) ListByOwner(_ context.Context, ownerID string) ([]domain.Sticker, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var result []domain.Sticker
	for _, sticker := range r.state.stickers {
		if sticker.OwnerID == ownerID {
			result = append(result, sticker)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *memStickers) List(_ context.Context, filter StickerFilter) ([]domain.Sticker, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var result []domain.Sticker
	for _, sticker := range r.state.stickers {
		if filter.Region != nil {
			vehicle, ok := r.state.vehicles[sticker.VehicleID]
			if !ok || vehicle.Region != *filter.Region {
				continue
			}
		}
		if filter.OwnerID != nil && sticker.OwnerID != *filter.OwnerID {
			continue
		}
		result = append(result, sticker)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, filter.Limit, filter.Offset, 50), nil
}

func (r *memStickers) CountLive(_ context.Context, region *string, now time.Time) (int64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var count int64
	for _, sticker := range r.state.stickers {
		if !sticker.IsLive(now) {
			continue
		}
		if region != nil {
			vehicle, ok := r.state.vehicles[sticker.VehicleID]
			if !ok || vehicle.Region != *region {
				continue
			}
		}
		count++
	}
	return count, nil
}

// --- payments ---

type memPayments struct{ state *memState }

func (r *memPayments) List(_ context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var result []domain.Payment
	for _, payment := range r.state.payments {
		if !r.state.paymentMatches(payment, filter.Region, filter.From) {
			continue
		}
		result = append(result, payment)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, filter.Limit, filter.Offset, 50), nil
}

func (r *memPayments) SumAmount(_ context.Context, region *string, from *time.Time) (float64, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var total float64
	for _, payment := range r.state.payments {
		if r.state.paymentMatches(payment, region, from) {
			total += payment.Amount
		}
	}
	return total, nil
}

// paymentMatches must be called with the state mutex held.
func (st *memState) paymentMatches(payment domain.Payment, region *string, from *time.Time) bool {
	if from != nil && payment.CreatedAt.Before(*from) {
		return false
	}
	if region == nil {
		return true
	}
	sticker, ok := st.stickers[payment.StickerID]
	if !ok {
		return false
	}
	vehicle, ok := st.vehicles[sticker.VehicleID]
	return ok && vehicle.Region == *region
}

// --- tax configs ---

type memTaxConfigs struct{ state *memState }

func (r *memTaxConfigs) List(_ context.Context) ([]domain.TaxConfig, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	return append([]domain.TaxConfig(nil), r.state.taxConfigs...), nil
}

// --- audit ---

type memAudit struct{ state *memState }

func (r *memAudit) Create(_ context.Context, entry *domain.AuditEntry) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.auditEntries = append(r.state.auditEntries, *entry)
	return nil
}

func (r *memAudit) List(_ context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	result := append([]domain.AuditEntry(nil), r.state.auditEntries...)
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return paginate(result, limit, offset, 100), nil
}

// --- inspections ---

type memInspections struct{ state *memState }

func (r *memInspections) Create(_ context.Context, inspection *domain.Inspection) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.inspections = append(r.state.inspections, *inspection)
	return nil
}

func (r *memInspections) List(_ context.Context, limit, offset int) ([]domain.Inspection, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	result := append([]domain.Inspection(nil), r.state.inspections...)
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return paginate(result, limit, offset, 50), nil
}

// --- notifications ---

type memNotifications struct{ state *memState }

func (r *memNotifications) Create(_ context.Context, record *domain.NotificationRecord) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.notifications = append(r.state.notifications, *record)
	return nil
}

func paginate[T any](list []T, limit, offset, defaultLimit int) []T {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
