package addresssync

import (
	"context"
	"sync"

	domain "github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSettingsReader is a mock implementation of domain.SettingsReader
type MockSettingsReader struct {
	mock.Mock
}

func (m *MockSettingsReader) IsEnabled(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockIdentityLinkRepository is a mock implementation of domain.IdentityLinkRepository
type MockIdentityLinkRepository struct {
	mock.Mock
}

func (m *MockIdentityLinkRepository) FindByContactID(ctx context.Context, contactID int64) (*domain.LinkedIdentity, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedIdentity), args.Error(1)
}

func (m *MockIdentityLinkRepository) FindByUserID(ctx context.Context, userID int64) (*domain.LinkedIdentity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedIdentity), args.Error(1)
}

// MockCRMAddressGateway is a mock implementation of domain.CRMAddressGateway
type MockCRMAddressGateway struct {
	mock.Mock
}

func (m *MockCRMAddressGateway) GetAddress(ctx context.Context, contactID, locationTypeID int64) (*domain.CRMAddress, error) {
	args := m.Called(ctx, contactID, locationTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CRMAddress), args.Error(1)
}

func (m *MockCRMAddressGateway) SaveAddress(ctx context.Context, params domain.AddressRecord) (*domain.CRMAddress, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CRMAddress), args.Error(1)
}

// MockStoreCustomerReader is a mock implementation of domain.StoreCustomerReader
type MockStoreCustomerReader struct {
	mock.Mock
}

func (m *MockStoreCustomerReader) GetCustomer(ctx context.Context, userID int64) (*domain.StoreCustomer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreCustomer), args.Error(1)
}

// MockStoreProfileWriter is a mock implementation of domain.StoreProfileWriter
type MockStoreProfileWriter struct {
	mock.Mock
}

func (m *MockStoreProfileWriter) UpdateUserMeta(ctx context.Context, userID int64, key, value string) error {
	args := m.Called(ctx, userID, key, value)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		events: make([]shared.DomainEvent, 0),
	}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return m.err
}

func (m *MockEventPublisher) GetEvents() []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, len(m.events))
	copy(result, m.events)
	return result
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// Verify interface compliance
var (
	_ domain.SettingsReader         = (*MockSettingsReader)(nil)
	_ domain.IdentityLinkRepository = (*MockIdentityLinkRepository)(nil)
	_ domain.CRMAddressGateway      = (*MockCRMAddressGateway)(nil)
	_ domain.StoreCustomerReader    = (*MockStoreCustomerReader)(nil)
	_ domain.StoreProfileWriter     = (*MockStoreProfileWriter)(nil)
	_ shared.EventPublisher         = (*MockEventPublisher)(nil)
)
