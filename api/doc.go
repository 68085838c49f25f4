// Package api provides the HTTP REST API for the sliding-tile game.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions                 create a session {config_id?, seed?}
//   - GET    /api/sessions                 list sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET    /api/sessions/unified         several boards at once (?sessionIds=a,b or ?configName=classic)
//   - GET    /api/sessions/{id}            session details, including the best score for its config
//   - DELETE /api/sessions/{id}            delete a session
//
// Game:
//   - GET  /api/sessions/{id}/state        current board
//   - POST /api/sessions/{id}/move         {direction, reset?}
//   - POST /api/sessions/{id}/bulk-move    {moves: [...], reset?}
//   - POST /api/sessions/{id}/reset        new board, same session
//   - GET  /api/sessions/{id}/history      paginated moves (?page&limit&order)
//
// Configuration and scores:
//   - GET  /api/configs                    list configs
//   - POST /api/configs                    save a config
//   - GET  /api/configs/{name}             one config
//   - GET  /api/leaderboard                top finished games (?config&limit)
//   - GET  /api/health
//
// Live updates are served on /ws?session={id}; every move, bulk move and
// reset broadcasts a state_update, plus victory and game_over events.
//
// Errors are JSON objects with the HTTP status repeated in the body:
//
//	{"error": "session not found: zz99", "code": 404}
//
// Unknown sessions map to 404. Unknown directions, unknown configs and
// malformed bodies map to 400.
package api
