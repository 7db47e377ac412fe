// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime carries the bidirectional event channel between
clients and the vote aggregator.

The Hub maps each poll id to its broadcast group of connected
clients. Clients join groups with joinPoll events and cast votes with
vote events; accepted votes fan the updated snapshot out to the whole
group as pollUpdated, while rejections go only to the originating
connection as error events.

Each Client runs two goroutines: readPump parses inbound events and
writePump drains a buffered send channel onto the wire. Fan-out only
ever queues onto that channel, so a slow or dead connection cannot
delay delivery to other subscribers; when a client's buffer fills, the
client is dropped from all groups instead.

Delivery is best-effort. There are no acks or retries, and group
state lives in process memory: this hub is single-node.
*/
package realtime
