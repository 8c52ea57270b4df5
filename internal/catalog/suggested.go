package catalog

import "algo_review_keep/internal/model"

// suggestedProblems は初心者向けに易しい順で並べたおすすめ問題
var suggestedProblems = []model.Problem{
	{ID: 1, Title: "Two Sum", TitleSlug: "two-sum", Difficulty: model.DifficultyEasy, Topic: "Hash Map"},
	{ID: 20, Title: "Valid Parentheses", TitleSlug: "valid-parentheses", Difficulty: model.DifficultyEasy, Topic: "Stack"},
	{ID: 21, Title: "Merge Two Sorted Lists", TitleSlug: "merge-two-sorted-lists", Difficulty: model.DifficultyEasy, Topic: "Linked List"},
	{ID: 121, Title: "Best Time to Buy and Sell Stock", TitleSlug: "best-time-to-buy-and-sell-stock", Difficulty: model.DifficultyEasy, Topic: "Greedy"},
	{ID: 125, Title: "Valid Palindrome", TitleSlug: "valid-palindrome", Difficulty: model.DifficultyEasy, Topic: "Two Pointers"},
	{ID: 206, Title: "Reverse Linked List", TitleSlug: "reverse-linked-list", Difficulty: model.DifficultyEasy, Topic: "Linked List"},
	{ID: 217, Title: "Contains Duplicate", TitleSlug: "contains-duplicate", Difficulty: model.DifficultyEasy, Topic: "Array"},
	{ID: 242, Title: "Valid Anagram", TitleSlug: "valid-anagram", Difficulty: model.DifficultyEasy, Topic: "Strings"},
	{ID: 3, Title: "Longest Substring Without Repeating Characters", TitleSlug: "longest-substring-without-repeating-characters", Difficulty: model.DifficultyMedium, Topic: "Sliding Window"},
	{ID: 49, Title: "Group Anagrams", TitleSlug: "group-anagrams", Difficulty: model.DifficultyMedium, Topic: "Hash Map"},
	{ID: 53, Title: "Maximum Subarray", TitleSlug: "maximum-subarray", Difficulty: model.DifficultyMedium, Topic: "Dynamic Programming"},
	{ID: 98, Title: "Validate Binary Search Tree", TitleSlug: "validate-binary-search-tree", Difficulty: model.DifficultyMedium, Topic: "Trees"},
	{ID: 102, Title: "Binary Tree Level Order Traversal", TitleSlug: "binary-tree-level-order-traversal", Difficulty: model.DifficultyMedium, Topic: "BFS"},
	{ID: 150, Title: "Evaluate Reverse Polish Notation", TitleSlug: "evaluate-reverse-polish-notation", Difficulty: model.DifficultyMedium, Topic: "Stack"},
	{ID: 200, Title: "Number of Islands", TitleSlug: "number-of-islands", Difficulty: model.DifficultyMedium, Topic: "Graph"},
	{ID: 238, Title: "Product of Array Except Self", TitleSlug: "product-of-array-except-self", Difficulty: model.DifficultyMedium, Topic: "Prefix/Suffix"},
	{ID: 11, Title: "Container With Most Water", TitleSlug: "container-with-most-water", Difficulty: model.DifficultyMedium, Topic: "Two Pointers"},
	{ID: 15, Title: "3Sum", TitleSlug: "3sum", Difficulty: model.DifficultyMedium, Topic: "Two Pointers"},
}
