// Package domain contains the entities managed by the admin backend (admins,
// products, links, categories, marketplaces), the audit record type, and the
// sentinel errors shared across layers. Entities carry minimal validation;
// richer business rules belong to the services that own them.
package domain
