// Package api groups the HTTP surface of teamflow.
//
// # API Overview
//
// Teamflow exposes a small task-orchestration API:
//   - POST /chat: submit a task and wait for the collected result
//   - POST /stream-chat: submit a task and follow progress over SSE
//   - GET /ws-chat: submit a task and follow progress over WebSocket
//   - GET /agents: describe the composed team hierarchy
//   - GET /health: liveness probe
//   - GET /metrics: Prometheus metrics
package api
