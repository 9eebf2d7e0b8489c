// Package migrations holds the SQL schema for the chat transcript store.
package migrations

import _ "embed"

//go:embed 001_chat_messages.sql
var Schema string
