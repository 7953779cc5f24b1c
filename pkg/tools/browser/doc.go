// Package browser provides the agent's browser automation layer: a
// Playwright launcher shared across the process, per-task sessions
// with a strict active/closed lifecycle, and the tool set the agent
// uses to search, navigate, interact with, and read web pages.
//
// Tools never crash a task. Failures inside a tool surface as error
// returns that the agent loop converts into observations, so the model
// can see what went wrong and try a different approach.
package browser
