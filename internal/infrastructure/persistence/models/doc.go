// Package models contains GORM persistence models for the tables the
// synchronizer reads: CRM identity links, CRM country and state/province
// reference tables, and store options.
//
// Models keep table names and column types; ToDomain converts them into
// addresssync domain values so the domain stays free of ORM tags.
package models
