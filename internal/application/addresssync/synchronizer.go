package addresssync

import (
	"context"
	"errors"
	"strconv"

	domain "github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrMissingDependency is returned by NewSynchronizer when a collaborator is nil
var ErrMissingDependency = errors.New("addresssync: missing synchronizer dependency")

// Dependencies are the collaborators of a Synchronizer
type Dependencies struct {
	Settings      domain.SettingsReader
	Identities    domain.IdentityLinkRepository
	CRM           domain.CRMAddressGateway
	Customers     domain.StoreCustomerReader
	Profiles      domain.StoreProfileWriter
	Tables        *domain.Tables
	LocationTypes domain.LocationTypeMap
	Publisher     shared.EventPublisher
	Logger        *zap.Logger
}

// Synchronizer copies address edits between the CRM and the store.
// It holds no state between calls and is safe for concurrent use.
type Synchronizer struct {
	settings      domain.SettingsReader
	identities    domain.IdentityLinkRepository
	crm           domain.CRMAddressGateway
	customers     domain.StoreCustomerReader
	profiles      domain.StoreProfileWriter
	tables        *domain.Tables
	locationTypes domain.LocationTypeMap
	publisher     shared.EventPublisher
	logger        *zap.Logger
}

// NewSynchronizer creates a Synchronizer
func NewSynchronizer(deps Dependencies) (*Synchronizer, error) {
	switch {
	case deps.Settings == nil:
		return nil, errMissing("settings")
	case deps.Identities == nil:
		return nil, errMissing("identities")
	case deps.CRM == nil:
		return nil, errMissing("crm")
	case deps.Customers == nil:
		return nil, errMissing("customers")
	case deps.Profiles == nil:
		return nil, errMissing("profiles")
	case deps.Tables == nil:
		return nil, errMissing("tables")
	case deps.Publisher == nil:
		return nil, errMissing("publisher")
	}

	for _, t := range domain.AllAddressTypes() {
		if _, ok := deps.LocationTypes.LocationTypeID(t); !ok {
			return nil, errMissing("location type for " + t.String())
		}
		if err := domain.MappedFields(t).Validate(); err != nil {
			return nil, err
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synchronizer{
		settings:      deps.Settings,
		identities:    deps.Identities,
		crm:           deps.CRM,
		customers:     deps.Customers,
		profiles:      deps.Profiles,
		tables:        deps.Tables,
		locationTypes: deps.LocationTypes,
		publisher:     deps.Publisher,
		logger:        logger.Named("addresssync"),
	}, nil
}

func errMissing(name string) error {
	return errors.Join(ErrMissingDependency, errors.New(name))
}

// enabled reads the sync flag. A read failure counts as disabled.
func (s *Synchronizer) enabled(ctx context.Context) bool {
	on, err := s.settings.IsEnabled(ctx, domain.SettingSyncContactAddress)
	if err != nil {
		s.logger.Warn("failed to read sync setting, treating as disabled",
			zap.String("setting", domain.SettingSyncContactAddress),
			zap.Error(err),
		)
		return false
	}
	return on
}

// SyncFromCRM applies an edited CRM address to the linked store user's profile
func (s *Synchronizer) SyncFromCRM(ctx context.Context, op, objectName string, objectID int64, address *domain.CRMAddress) domain.Outcome {
	if !s.enabled(ctx) {
		return domain.Skipped(domain.SkipFlagDisabled)
	}
	if op != domain.OpEdit {
		return domain.Skipped(domain.SkipUnsupportedOperation)
	}
	if objectName != domain.ObjectNameAddress {
		return domain.Skipped(domain.SkipUnsupportedEntity)
	}
	if address == nil || !s.locationTypes.IsMapped(address.LocationTypeID) {
		return domain.Skipped(domain.SkipUnmappedLocationType)
	}
	if !address.HasContact() {
		return domain.Skipped(domain.SkipMissingContact)
	}

	link, err := s.identities.FindByContactID(ctx, address.ContactID)
	if err != nil || !link.IsValid() {
		if err != nil && !errors.Is(err, domain.ErrIdentityNotLinked) {
			s.logger.Warn("identity lookup failed",
				zap.Int64("contact_id", address.ContactID),
				zap.Error(err),
			)
		}
		return domain.Skipped(domain.SkipIdentityNotLinked)
	}

	addressType, _ := s.locationTypes.AddressTypeFor(address.LocationTypeID)
	log := s.logger.With(
		zap.Int64("address_id", objectID),
		zap.Int64("contact_id", link.ContactID),
		zap.Int64("user_id", link.UserID),
		zap.String("address_type", addressType.String()),
	)

	outcome := domain.Outcome{Status: domain.OutcomeApplied, AddressType: addressType}
	written := make(domain.AddressRecord)
	for _, pair := range domain.MappedFields(addressType) {
		value, ok := s.storeValue(address.Fields, pair.CRMField)
		if !ok {
			continue
		}
		if err := s.profiles.UpdateUserMeta(ctx, link.UserID, pair.StoreKey, value); err != nil {
			log.Error("failed to write store address field",
				zap.String("field", pair.StoreKey),
				zap.Error(err),
			)
			outcome.FieldsSkipped = append(outcome.FieldsSkipped, pair.StoreKey)
			continue
		}
		written[pair.StoreKey] = value
		outcome.FieldsWritten = append(outcome.FieldsWritten, pair.StoreKey)
	}

	log.Info("store address updated from crm",
		zap.Strings("written", outcome.FieldsWritten),
		zap.Strings("failed", outcome.FieldsSkipped),
	)
	s.publish(ctx, log, domain.NewStoreAddressUpdatedEvent(link.UserID, addressType, written))
	return outcome
}

// storeValue translates one CRM field into the value stored on the store side
func (s *Synchronizer) storeValue(fields domain.AddressRecord, field domain.CRMField) (string, bool) {
	switch field {
	case domain.CRMFieldCountryID:
		id, ok := fields.Int(field)
		if !ok {
			return "", false
		}
		return s.tables.CountryISOCode(id)
	case domain.CRMFieldStateProvinceID:
		id, ok := fields.Int(field)
		if !ok {
			return "", false
		}
		return s.tables.StateProvinceName(id)
	default:
		return fields.Value(field)
	}
}

// SyncFromStore writes a store customer's saved address to the linked CRM contact
func (s *Synchronizer) SyncFromStore(ctx context.Context, userID int64, addressType domain.AddressType) domain.Outcome {
	if !s.enabled(ctx) {
		return domain.Skipped(domain.SkipFlagDisabled)
	}
	if !addressType.IsValid() {
		return domain.Skipped(domain.SkipInvalidAddressType)
	}

	link, err := s.identities.FindByUserID(ctx, userID)
	if err != nil || !link.IsValid() {
		if err != nil && !errors.Is(err, domain.ErrIdentityNotLinked) {
			s.logger.Warn("identity lookup failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return domain.Skipped(domain.SkipIdentityNotLinked)
	}

	log := s.logger.With(
		zap.Int64("user_id", link.UserID),
		zap.Int64("contact_id", link.ContactID),
		zap.String("address_type", addressType.String()),
	)

	customer, err := s.customers.GetCustomer(ctx, link.UserID)
	if err != nil || customer == nil {
		log.Warn("failed to read store customer", zap.Error(err))
		return domain.Skipped(domain.SkipCustomerUnavailable)
	}

	locationTypeID, _ := s.locationTypes.LocationTypeID(addressType)
	outcome := domain.Outcome{AddressType: addressType}
	edited := s.editedAddress(customer.Address(addressType), addressType, &outcome)

	existing := domain.NewStepResult(s.crm.GetAddress(ctx, link.ContactID, locationTypeID))
	base := domain.BaseParams(link.ContactID, locationTypeID)
	if existing.Succeeded() {
		base = base.Merge(existing.Address.Params())
	} else {
		log.Info("no existing crm address, creating from edited fields",
			zap.String("reason", existing.Reason()),
		)
	}
	params := base.Merge(edited)

	saved := domain.NewStepResult(s.crm.SaveAddress(ctx, params))
	if !saved.Succeeded() {
		log.Error("failed to save crm address",
			zap.String("reason", saved.Reason()),
			zap.Any("params", params),
		)
		outcome.Status = domain.OutcomeFailed
		outcome.Reason = saved.Reason()
		s.publish(ctx, log, domain.NewCRMAddressSyncFailedEvent(link.ContactID, link.UserID, addressType, saved.Reason(), params))
		return outcome
	}

	log.Info("crm address updated from store",
		zap.Int64("address_id", saved.Address.ID),
		zap.Strings("fields", outcome.FieldsWritten),
	)
	outcome.Status = domain.OutcomeApplied
	s.publish(ctx, log, domain.NewCRMAddressUpdatedEvent(link.ContactID, link.UserID, addressType, saved.Address))
	return outcome
}

// editedAddress translates a store address into CRM fields. State is resolved
// within the country translated earlier in the same pass. An unresolved country
// or state is sent empty so the existing CRM value is cleared, never kept.
func (s *Synchronizer) editedAddress(addr domain.StoreAddress, addressType domain.AddressType, outcome *domain.Outcome) domain.AddressRecord {
	edited := make(domain.AddressRecord)
	var countryID int64
	for _, pair := range domain.MappedFields(addressType) {
		value, ok := addr.Get(pair.Field)
		if !ok {
			continue
		}
		switch pair.CRMField {
		case domain.CRMFieldCountryID:
			id, found := s.tables.CountryID(value)
			if !found {
				edited[string(pair.CRMField)] = ""
				outcome.FieldsSkipped = append(outcome.FieldsSkipped, string(pair.CRMField))
				continue
			}
			countryID = id
			value = strconv.FormatInt(id, 10)
		case domain.CRMFieldStateProvinceID:
			id, found := s.tables.StateProvinceID(value, countryID)
			if !found {
				edited[string(pair.CRMField)] = ""
				outcome.FieldsSkipped = append(outcome.FieldsSkipped, string(pair.CRMField))
				continue
			}
			value = strconv.FormatInt(id, 10)
		}
		edited[string(pair.CRMField)] = value
		outcome.FieldsWritten = append(outcome.FieldsWritten, string(pair.CRMField))
	}
	return edited
}

func (s *Synchronizer) publish(ctx context.Context, log *zap.Logger, event shared.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish completion event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
