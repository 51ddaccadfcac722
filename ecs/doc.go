// Package ecs provides ECS adapters for orbit.
package ecs
