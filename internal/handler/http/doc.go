// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, resource controllers, and the named middleware
// used by the REST API. Cross-cutting concerns such as authentication,
// request tracing, and access logging are handled in this package before
// requests are delegated to the service layer.
package http
