// Command wordassoc imports word association survey answers, applies the
// operator's merge and disable decisions, and reports answer distributions,
// their statistics and the base words with the most similar distributions.
package main
