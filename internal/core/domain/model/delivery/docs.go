// Package delivery provides the Delivery (route) aggregate and its status lifecycle.
//
// A route belongs to one tenant, one driver and one vehicle. It caches the
// aggregates of its orders (Totals) and the freight computed for them; the
// application layer recomputes both whenever the order set or assignment
// changes. Orders reference the route by id and are loaded separately.
package delivery
