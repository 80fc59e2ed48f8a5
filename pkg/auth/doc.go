// Package auth implements the FTP server's authentication/authorization
// engine: the method-set narrowing protocol, the file-backed user/group
// store, the authenticator's propose/next/verify/bind-impersonation/
// materialize worker state machine, and the SharedUser weak-map that lets
// many concurrent sessions for the same user share one in-memory identity
// and rate-limit budget.
//
// Grounded on the original FileZilla Server C++ implementation under
// _examples/original_source/src/filezilla/authentication/, specifically
// authenticator.hpp, method.hpp, error.hpp, user.hpp and
// file_based_authenticator.cpp (see DESIGN.md).
package auth
