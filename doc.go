// SPDX-License-Identifier: Apache-2.0

/*
Package gssapi defines an interface for using the
Generic Security Services Application Programming Interface
for the Go programming language.

The interface is described in detail in the
[Golang GSSAPI bindings specification].

This package must be used in conjunction with a GSSAPI provider
that implements the interface, such as the
[C bindings] provider.

[Golang GSSAPI bindings specification]: https://github.com/golang-auth/go-gssapi/wiki/Golang-GSSAPI-bindings-specification
[C bindings]: https://github.com/golang-auth/go-gssapi-c
*/
package gssapi
