package handler

import "time"

// TimeFormat is the timestamp format used in API responses.
const TimeFormat = time.RFC3339

// serviceVersion is reported by the health endpoint.
const serviceVersion = "0.4.1"
