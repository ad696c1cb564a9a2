package main

import (
	"math"
	"math/rand"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
)

// generateRandClients places the depot in the middle and scatters the customers.
func generateRandClients(rnd *rand.Rand, n, width, height, maxDemand int) []*client.Client {
	if n <= 0 {
		return nil
	}
	clients := make([]*client.Client, 0, n)
	clients = append(clients, client.New(client.Depot, float64(width)/2, float64(height)/2, 0))
	for i := 1; i < n; i++ {
		clients = append(clients, client.New(
			client.ID(i),
			float64(rnd.Intn(width)),
			float64(rnd.Intn(height)),
			1+rnd.Intn(max(maxDemand, 1)),
		))
	}
	return clients
}

// generateFixClients lays the customers on a grid around a central depot.
func generateFixClients(rnd *rand.Rand, n, width, height, maxDemand int) []*client.Client {
	if n <= 0 {
		return nil
	}
	clients := make([]*client.Client, 0, n)
	clients = append(clients, client.New(client.Depot, float64(width)/2, float64(height)/2, 0))

	customers := n - 1
	if customers == 0 {
		return clients
	}
	rows := int(math.Sqrt(float64(customers)))
	cols := (customers + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	id := client.ID(1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			// the grid may have more slots than customers
			if int(id) > customers {
				break
			}
			x := xStep/2 + float64(j)*xStep
			y := yStep/2 + float64(i)*yStep
			clients = append(clients, client.New(id, x, y, 1+rnd.Intn(max(maxDemand, 1))))
			id++
		}
	}
	return clients
}
