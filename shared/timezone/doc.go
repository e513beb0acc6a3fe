// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Initialization at startup:
//     timezone.Init(config.Get())
//
//  2. Current time and conversions:
//     now := timezone.Now()
//     appTime := timezone.ToAppTime(someTime)
//
//  3. Calendar arithmetic used by reservation dates:
//     today := timezone.StartOfDay(timezone.Now())
//     horizon := timezone.AddMonths(today, 3)
//
// The timezone is configured via the APP_TIMEZONE environment variable and
// defaults to UTC until Init is called.
package timezone
