/*
Package fetch aggregates many unrelated platform queries into one
consolidated snapshot.

FetchAll fans out one goroutine per metric: point queries for vitals,
body measurements, and activity counts; a range query for sleep intervals;
one characteristics query for static profile traits. The join waits for
every sub-query to complete or fail. A failed or malformed sub-query
absorbs into an absent metric; the aggregate itself never fails. The
resulting HealthSnapshot replaces the previous one wholesale.

FetchMedications queries a trailing 3-month window, sorts by start date
descending, and classifies IsActive with the window-boundary heuristic: an
end date effectively beyond 100 years out is "no end date" (active),
otherwise a medication is active iff its end date is still in the future.
*/
package fetch
