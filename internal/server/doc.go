// Package server exposes a session to renderers over socket.io.
//
// A renderer connects and receives a "render" event carrying the render
// tree. It sends "action" events ({componentName, actionName, args}); each
// accepted action broadcasts the new render tree to every connected renderer.
// Rejected actions are answered with an "action_error" event to the sender
// only.
package server
