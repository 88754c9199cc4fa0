/*
Package authz tracks per-category read/write authorization against the
health platform.

The platform grants or denies permission per (category, direction) pair, not
per app, so the registry answers three questions the rest of the engine and
the presentation layer keep asking:

  - Status(category, direction): the platform's current decision, always
    read fresh. The internal cache serves display only and is never the
    source of truth for write decisions.
  - NeedsAttention(categories): any write status not Authorized. A
    NotDetermined category can still be resolved in-flow with a prompt.
  - Denied(categories): explicit denials, called out separately because the
    user must leave the app for the platform settings surface to fix them.

RequestAccess presents one combined prompt for both category sets. The
platform does not re-prompt for categories the user already decided, so
repeated calls are cheap and safe. Statuses are never persisted by this
package; they are recomputed on every query.
*/
package authz
