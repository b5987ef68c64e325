// Package fleet checks that trips and payments reference usable drivers,
// vehicles and routes.
package fleet

import (
	"context"
	"errors"
	"fmt"

	"fleet-management/internal/models"
)

type DriverLookup interface {
	GetDriver(ctx context.Context, driverID int) (*models.Driver, error)
}

type VehicleLookup interface {
	GetVehicle(ctx context.Context, vehicleID int) (*models.Vehicle, error)
}

type RouteLookup interface {
	GetRoute(ctx context.Context, routeID int) (*models.Route, error)
}

// Checker resolves master records for a write. New records must point at
// ACTIVE masters; edits only require that the master still exists.
type Checker struct {
	drivers  DriverLookup
	vehicles VehicleLookup
	routes   RouteLookup
}

func NewChecker(drivers DriverLookup, vehicles VehicleLookup, routes RouteLookup) *Checker {
	return &Checker{drivers: drivers, vehicles: vehicles, routes: routes}
}

func resolve[T any](ctx context.Context, kind string, id int, requireActive bool, get func(context.Context, int) (*T, error), status func(*T) string) (*T, error) {
	rec, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %d does not exist", models.ErrInvalidInput, kind, id)
		}
		return nil, fmt.Errorf("fleet.%s: %w", kind, err)
	}
	if requireActive && status(rec) != models.StatusActive {
		return nil, fmt.Errorf("%w: %s %d is inactive", models.ErrInvalidInput, kind, id)
	}
	return rec, nil
}

func (c *Checker) Driver(ctx context.Context, driverID int, requireActive bool) (*models.Driver, error) {
	return resolve(ctx, "driver", driverID, requireActive, c.drivers.GetDriver, func(d *models.Driver) string { return d.Status })
}

func (c *Checker) Vehicle(ctx context.Context, vehicleID int, requireActive bool) (*models.Vehicle, error) {
	return resolve(ctx, "vehicle", vehicleID, requireActive, c.vehicles.GetVehicle, func(v *models.Vehicle) string { return v.Status })
}

func (c *Checker) Route(ctx context.Context, routeID int, requireActive bool) (*models.Route, error) {
	return resolve(ctx, "route", routeID, requireActive, c.routes.GetRoute, func(r *models.Route) string { return r.Status })
}

// Assignment resolves the driver and vehicle of a trip in one call.
func (c *Checker) Assignment(ctx context.Context, driverID, vehicleID int, requireActive bool) (*models.Driver, *models.Vehicle, error) {
	d, err := c.Driver(ctx, driverID, requireActive)
	if err != nil {
		return nil, nil, err
	}
	v, err := c.Vehicle(ctx, vehicleID, requireActive)
	if err != nil {
		return nil, nil, err
	}
	return d, v, nil
}
