// Package topology builds the physical network that will carry the logical
// demand.
//
// # Strategies
//
// Two [Builder] implementations exist:
//
//   - [Opportunistic]: picks the best start node with [SelectStart], lays
//     down the greedy heaviest-next-hop Hamiltonian cycle from it, then adds
//     the heaviest remaining demands as direct links while both endpoints
//     have spare ports (fewer than Delta links in that direction).
//   - [Manhattan]: a toroidal grid with a fixed row length, independent of
//     the demand. Every node gets exactly four outgoing and four incoming
//     links.
//
// # Start Selection
//
// [SelectStart] scores every candidate start node by the weight of the
// greedy cycle it produces. Candidates are scored concurrently into a
// pre-sized slice and reduced sequentially, so the winner (highest weight,
// lowest index on ties) does not depend on goroutine scheduling.
//
// # Consumed Demand
//
// Logical edges traversed by the opportunistic cycle are removed from
// [Topology.Residual] and recorded in [Topology.Consumed]. The embedder
// charges consumed demand straight to its cycle link, so nothing is counted
// twice and nothing is lost.
package topology
