/*
Package engine implements a two-level demand-paged virtual memory simulator.

The engine owns a flat, process-owned byte buffer ("real memory") and
translates a simulated 32-bit address space onto it, materializing pages on
first touch, evicting them under memory pressure, and restoring them from a
backing store on subsequent faults.

# Real memory #

Real memory is a single contiguous arena, divided into two regions by
offset:

  - a low page-table region, from which page tables are handed out by a
    bump allocator that never frees;
  - a high frame region, from which client pages are handed out, first by
    a bump allocator and then, once exhausted, by evicting a resident
    page chosen by the CLOCK policy.

# Translation #

A simulated address decomposes into an upper table index, a lower table
index, and a page offset. The upper table is allocated once, at a fixed
real address, and holds pointers to lower tables, allocated lazily. Lower
table entries ([PTE]) describe the state of one simulated page: resident
(backed by a frame) or non-resident (backed by a block in the backing
store, or never touched).

Translating an address that cannot be satisfied -- an unallocated lower
table, an unmapped page, or a non-resident page -- faults: the engine
allocates what is missing, or swaps the page in, and then completes the
translation within the same call.

# Replacement #

When the frame region is full, the engine needs to steal a frame from a
resident page to satisfy a fault. The engine's clock cursor implements the CLOCK
approximation of least-recently-used: it scans frames in circular order,
clearing reference bits, until it finds one that was not referenced since
its last pass.
*/
package engine
