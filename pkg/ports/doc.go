/*
Package ports defines the driven ports (interfaces) of the swimlane engine.

These interfaces decouple the transition engine from its collaborators,
allowing it to work with different block stores and lock providers, and
letting presentation adapters depend on the engine without importing it.

# Key Interfaces

  - BlockStore: Holds the blocks and applies committed mutations atomically.
  - DistributedLocker: Serializes commits on the same block across replicas.
  - Engine: The operations a presentation adapter drives.
*/
package ports
