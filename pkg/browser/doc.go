// Package browser provides web browser automation through Playwright.
//
// It wraps the driver lifecycle and a single-session model: a Driver owns the
// Playwright instance, a Session owns one browser/context/page triple, and
// the inspection helpers expose the visibility, counting, and text queries
// the smoke checker is built from. Element absence is reported as a normal
// outcome; only driver-level failures surface as errors.
package browser
