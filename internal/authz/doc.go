// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

// Package authz provides role-based authorization using Casbin.
//
// BibReaders has two roles. Members browse the catalog and request
// recommendations; admins inherit everything members can do and
// additionally manage books and trigger training runs. The model and
// policy ship embedded in the binary, so deployments need no extra
// files and the rules cannot drift from the code that relies on them.
//
// # Objects and Actions
//
// Permissions are expressed as (role, object, action) triples over a
// small fixed vocabulary:
//
//	object            action   granted to
//	catalog           read     member (and admin via inheritance)
//	catalog           write    admin
//	recommendations   read     member (and admin via inheritance)
//	training          read     admin
//	training          write    admin
//
// # Usage
//
// The HTTP layer wires the middleware behind authentication:
//
//	enforcer, err := authz.NewEnforcer(nil)
//	...
//	mw := authz.NewMiddleware(enforcer)
//	r.With(mw.Require(authz.ObjectCatalog, authz.ActionWrite)).Post("/books", h.CreateBook)
//
// Decisions are cached per (subject, object, action) with a short TTL;
// policy mutations invalidate affected entries.
package authz
