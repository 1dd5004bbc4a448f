// Package schedule resolves which named daily schedule applies to a
// calendar date. Resolution walks holiday exceptions first, then seasonal
// date ranges in descending priority, then the template's default weekly
// pattern. It also answers period-level queries: open/closed state, target
// temperature, daily transitions and next-opening search.
package schedule
