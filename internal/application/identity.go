package application

import (
	"context"
	"log/slog"

	"prherald/internal/domain/model"
	"prherald/internal/domain/port/driven"
)

// ResolveConfig is the explicit configuration value threaded through every
// identity resolution call.
type ResolveConfig struct {
	// EmailMappings maps code-host handles to known emails, consulted first.
	EmailMappings map[string]string
	// DefaultReviewers are raw emails always considered for new PRs.
	DefaultReviewers []string
	// AutoMatchByEmail enables falling back to the handle's public email on
	// the code host when no explicit mapping exists.
	AutoMatchByEmail bool
}

// IdentityMapper resolves code-host identities to chat identities through a
// layered lookup: explicit mapping table first, then the public email on the
// code host. Every failure along the way degrades to a miss; the mapper
// never aborts a caller's flow.
type IdentityMapper struct {
	host   driven.CodeHost
	chat   driven.ChatDirectory
	logger *slog.Logger
}

// NewIdentityMapper creates an IdentityMapper.
func NewIdentityMapper(host driven.CodeHost, chat driven.ChatDirectory, logger *slog.Logger) *IdentityMapper {
	return &IdentityMapper{host: host, chat: chat, logger: logger}
}

// Resolve maps a code-host handle to a chat identity. It returns "" when no
// identity could be found; the caller proceeds with a plain-text handle.
// Team slugs (org/team shape) have no public email and resolve to a miss.
func (m *IdentityMapper) Resolve(ctx context.Context, handle string, cfg ResolveConfig) string {
	if email, ok := cfg.EmailMappings[handle]; ok && email != "" {
		if id := m.lookupByEmail(ctx, handle, email); id != "" {
			return id
		}
	}

	if !cfg.AutoMatchByEmail {
		return ""
	}

	email, err := m.host.GetUserEmail(ctx, handle)
	if err != nil {
		m.logger.Warn("public email lookup failed", "handle", handle, "error", err)
		return ""
	}
	if email == "" {
		return ""
	}

	return m.lookupByEmail(ctx, handle, email)
}

// ResolveAll applies Resolve to each handle, preserving input order and
// dropping unresolved entries.
func (m *IdentityMapper) ResolveAll(ctx context.Context, handles []string, cfg ResolveConfig) []model.Reviewer {
	resolved := make([]model.Reviewer, 0, len(handles))
	for _, handle := range handles {
		id := m.Resolve(ctx, handle, cfg)
		if id == "" {
			continue
		}
		resolved = append(resolved, model.Reviewer{Handle: handle, ChatID: id})
	}
	return resolved
}

// ResolveKeepingUnresolved is ResolveAll except misses are kept with an
// empty ChatID, for callers that render unresolved handles as plain text.
func (m *IdentityMapper) ResolveKeepingUnresolved(ctx context.Context, handles []string, cfg ResolveConfig) []model.Reviewer {
	out := make([]model.Reviewer, 0, len(handles))
	for _, handle := range handles {
		out = append(out, model.Reviewer{Handle: handle, ChatID: m.Resolve(ctx, handle, cfg)})
	}
	return out
}

// lookupByEmail asks the chat directory for the identity behind an email.
// Directory errors are logged and treated as a miss.
func (m *IdentityMapper) lookupByEmail(ctx context.Context, handle, email string) string {
	id, err := m.chat.LookupUserByEmail(ctx, email)
	if err != nil {
		m.logger.Warn("chat directory lookup failed", "handle", handle, "error", err)
		return ""
	}
	return id
}
