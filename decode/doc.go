// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package decode classifies raw HTTP response bodies into a small set of tagged
kinds (empty, HTML error page, invalid JSON, object, array) so that callers
never string-sniff payloads themselves.

The remote collaborators this service talks to are unreliable in shape: the
data service may answer with a bare array, a success envelope, or an HTML
error page; the messaging gateway may answer with a pass-through provider
response or an Express "Cannot POST" page. Every consumer goes through Sniff
or Voters first and switches on the Kind.
*/
package decode
