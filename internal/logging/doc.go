// Package logging builds the slog loggers sortdir writes through.
//
// Two handlers are available. The console handler prints a header per record
// ("time LEVEL [component] Run id · folder (depth N) – message"), lifts file
// movements onto a "source -> target [Category]" line, and lists the rest of
// the fields beneath. The JSON handler emits one object per record for log
// shippers. WithContext tags a logger with the run and pass carried by a
// context.
package logging
