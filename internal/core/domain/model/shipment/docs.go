// Package shipment contains the Shipment aggregate and its lifecycle state
// machine. Status and Event form a closed, typed transition table; the
// aggregate's transition methods are the only mutators of status, and they
// populate booking and delivery side-effect fields only on legal transitions.
//
// The wire strings produced by Status.String (draft, booked, in_transit,
// exception, delivered, cancelled) are part of the external contract shared
// with the API and the persistence layer.
package shipment
