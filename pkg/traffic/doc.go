// Package traffic routes logical demand over a physical topology and checks
// the result.
//
// # Embedding
//
// [Embed] assigns every demand of the original matrix to physical links:
//
//  1. Demand consumed by the opportunistic cycle is charged to its cycle
//     link.
//  2. Each remaining demand whose endpoints are directly linked is charged to
//     that link (the lowest link handle when links are parallel).
//  3. All other demands are sorted by descending weight and routed one by one
//     over the currently least loaded path, adding their weight to every link
//     on it. An unreachable demand fails the run with NO_PATH_FOUND.
//
// # Refinement
//
// [Refine] repeatedly moves load off the hottest link onto its cheapest
// detour. Each step halves the gap between the hottest link and the hottest
// link of the detour. Steps without a detour are skipped.
//
// # Conservation
//
// [CheckConservation] verifies that at every node the physical flow balance
// matches the original demand balance within [Tolerance].
package traffic
