// Package addresssync contains the Address Sync bounded context.
// It keeps a store customer's billing/shipping address and the linked CRM
// contact's address in step, translating field names and coded values.
//
// Key concepts:
//   - AddressType: the store-side classifier ("billing" / "shipping")
//   - LocationTypeMap: bidirectional classifier <-> CRM location_type_id mapping
//   - FieldMapping: ordered store field <-> CRM field pairs for one classifier
//   - Tables: read-only country and state/province code translation tables
//   - LinkedIdentity: pre-established store user <-> CRM contact association
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) for the settings store, identity links, the CRM and the
//     store are defined here
//   - Adapters live in the infrastructure layer
package addresssync
